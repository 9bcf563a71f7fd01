package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names.
const (
	TemplateOTP           = "otp"
	TemplatePasswordReset = "password_reset"
	TemplateWelcome       = "welcome"
	TemplateSaleCompleted = "sale_completed"
)

// TemplateManager keeps parsed templates and renders them on demand.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager builds a manager preloaded with the built-in
// transactional templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-ins are compile-time constants, parse cannot fail.
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

var builtinTemplates = map[string]string{
	TemplateOTP: `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Verify your email</h2>
  <p>Hi {{.Name}},</p>
  <p>Your verification code is:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>The code expires in {{.ExpiryMinutes}} minutes. If you did not sign up, ignore this email.</p>
</div>`,

	TemplatePasswordReset: `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Reset your password</h2>
  <p>Hi {{.Name}},</p>
  <p>Use this code to reset your password:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>The code expires in {{.ExpiryMinutes}} minutes. If you did not request a reset, ignore this email.</p>
</div>`,

	TemplateWelcome: `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Welcome to Thryfto!</h2>
  <p>Hi {{.Name}},</p>
  <p>Your email is verified. List something you no longer wear and start earning coins.</p>
</div>`,

	TemplateSaleCompleted: `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto;">
  <h2>Your item sold</h2>
  <p>Hi {{.Name}},</p>
  <p><strong>{{.ItemTitle}}</strong> has been sold and paid for.</p>
  <p>{{.Coins}} coins were added to your balance.</p>
</div>`,
}
