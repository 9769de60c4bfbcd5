package core

import (
	"bytes"
	"embed"
	htmltmpl "html/template"
	"net/mail"
	"strings"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

//go:embed templates/*.txt templates/*.html
var templatesFS embed.FS

var (
	textTemplates *texttmpl.Template
	htmlTemplates *htmltmpl.Template
	tmplInit      sync.Once
)

type (
	Attachment struct {
		Content     *bytes.Buffer
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		Subject     string
		BodyStr     string // simple text/plain, non-templated content
		Attachments []Attachment

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	ContextData struct {
		FrontendBaseURL string
		Data            interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func loadTemplates() {
	tmplInit.Do(func() {
		textTemplates = texttmpl.Must(texttmpl.ParseFS(templatesFS, "templates/*.txt"))
		htmlTemplates = htmltmpl.Must(htmltmpl.ParseFS(templatesFS, "templates/*.html"))
	})
}

func (m *EmailMessage) getContextData() ContextData {
	return ContextData{
		FrontendBaseURL: Conf.FrontendBaseURL,
		Data:            m.TemplateData,
	}
}

func (m *EmailMessage) renderText() error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	} else if m.TemplateName == "" {
		return nil
	}

	tmpl := textTemplates.Lookup(m.TemplateName + ".txt")
	if tmpl == nil {
		return nil
	}
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, m.getContextData()); err != nil {
		return errors.Wrap(err, "executing text template")
	}
	m.TextContent = buff.String()
	return nil
}

func (m *EmailMessage) renderHTML() error {
	if m.TemplateName == "" {
		return nil
	}

	tmpl := htmlTemplates.Lookup(m.TemplateName + ".html")
	if tmpl == nil {
		return nil
	}
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, m.getContextData()); err != nil {
		return errors.Wrap(err, "executing html template")
	}
	m.HTMLContent = buff.String()
	return nil
}

// Render renders the message's text and HTML contents from its template (if any).
func (m *EmailMessage) Render() error {
	loadTemplates()
	if err := m.renderText(); err != nil {
		return err
	}
	return m.renderHTML()
}

func (m *EmailMessage) HasRecipients() bool {
	return (len(m.To) + len(m.Cc) + len(m.Bcc)) > 0
}

func (m *EmailMessage) HasContent() bool {
	return strings.TrimSpace(m.TextContent) != "" || strings.TrimSpace(m.HTMLContent) != ""
}

func (m *EmailMessage) HasAttachments() bool {
	return len(m.Attachments) > 0
}
