package main

import "github.com/Yashdhankecha/Thryfto-sub001/internal/app"

func main() {
	app.Run()
}
