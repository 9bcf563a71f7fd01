package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateManager_RendersBuiltins(t *testing.T) {
	t.Parallel()

	tm := NewTemplateManager()

	body, err := tm.Render(TemplateOTP, TemplateData{
		"Name": "Asel",
		"Code": "482913",
	})
	assert.NoError(t, err)
	assert.Contains(t, body, "Asel")
	assert.Contains(t, body, "482913")

	body, err = tm.Render(TemplateSaleCompleted, TemplateData{
		"Name":      "Dana",
		"ItemTitle": "Vintage denim jacket",
		"Coins":     int64(45),
	})
	assert.NoError(t, err)
	assert.Contains(t, body, "Vintage denim jacket")
	assert.Contains(t, body, "45")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	t.Parallel()

	tm := NewTemplateManager()
	_, err := tm.Render("no_such_template", TemplateData{})
	assert.Error(t, err)
}

func TestTemplateManager_EscapesHTML(t *testing.T) {
	t.Parallel()

	tm := NewTemplateManager()
	body, err := tm.Render(TemplateWelcome, TemplateData{
		"Name": "<script>alert(1)</script>",
	})
	assert.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestLogProvider_NeverFails(t *testing.T) {
	t.Parallel()

	p := NewLogProvider()
	assert.NoError(t, p.SendOTP("a@b.c", "A", "123456"))
	assert.NoError(t, p.SendPasswordResetOTP("a@b.c", "A", "123456"))
	assert.NoError(t, p.SendWelcome("a@b.c", "A"))
	assert.NoError(t, p.SendSaleCompleted("a@b.c", "A", "Item", 10))
}
