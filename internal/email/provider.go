package email

// TemplateData carries values into an email template.
type TemplateData map[string]interface{}

// Provider sends transactional mail. Implementations must be safe for
// concurrent use.
type Provider interface {
	// SendOTP delivers a verification code for signup confirmation.
	SendOTP(to, name, code string) error

	// SendPasswordResetOTP delivers a code for the forgot-password flow.
	SendPasswordResetOTP(to, name, code string) error

	// SendWelcome greets a newly verified user.
	SendWelcome(to, name string) error

	// SendSaleCompleted tells the seller their item sold and how many
	// coins they earned.
	SendSaleCompleted(to, name, itemTitle string, coins int64) error
}

// TemplateRenderer renders a named template with data.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name, templateStr string) error
}
