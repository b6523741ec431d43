package ports

// TemplateEngine renders configuration templates.
type TemplateEngine interface {
	// Render replaces the placeholders in raw with values from vars.
	Render(raw []byte, vars map[string]string) ([]byte, error)
}
