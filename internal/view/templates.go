package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roadscore/roadscore/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	buffers   sync.Pool
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	CurrentPath string
	Data        any
}

var printer = message.NewPrinter(language.English)

var accents = map[string]string{
	"green":  "accent-green",
	"blue":   "accent-blue",
	"purple": "accent-purple",
	"orange": "accent-orange",
	"yellow": "accent-yellow",
	"red":    "accent-red",
}

var glyphs = map[string]string{
	"battery":     "⚡",
	"navigation":  "➤",
	"clock":       "⏱",
	"calendar":    "☷",
	"award":       "★",
	"shield":      "⛨",
	"trending-up": "↗",
	"users":       "☺",
	"alert":       "⚠",
	"activity":    "∿",
	"file":        "▤",
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":    formatDate,
		"formatCount":   formatCount,
		"accentClass":   accentClass,
		"severityClass": severityClass,
		"icon":          icon,
	}
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(Funcs()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	e := &Engine{templates: tpl}
	e.buffers.New = func() any { return new(bytes.Buffer) }
	return e, nil
}

// Render executes a named template with TemplateData. Output is buffered so
// a failing template never leaves a half-written page.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	buf := e.buffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer e.buffers.Put(buf)

	if err := e.templates.ExecuteTemplate(buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(raw string) string {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return raw
	}
	return t.Format("02 Jan 2006")
}

// formatCount groups the digits of integral figures; anything else is
// returned unchanged.
func formatCount(raw string) string {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return raw
	}
	return printer.Sprintf("%d", n)
}

func accentClass(accent string) string {
	if class, ok := accents[strings.ToLower(accent)]; ok {
		return class
	}
	return "accent-blue"
}

func severityClass(severity string) string {
	switch strings.ToLower(severity) {
	case "high":
		return "severity-high"
	case "medium":
		return "severity-medium"
	default:
		return "severity-low"
	}
}

func icon(name string) string {
	if glyph, ok := glyphs[name]; ok {
		return glyph
	}
	return "•"
}
