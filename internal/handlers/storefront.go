package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/themizzi/shopflow/internal/models"
	"github.com/themizzi/shopflow/internal/services"
)

// BasketCookie holds the visitor's basket id
const BasketCookie = "basket_id"

// PartialsFile is the template file holding the shared page chrome
const PartialsFile = "partials.html"

// Header is the data the shared page header renders
type Header struct {
	Query       string
	BasketCount int
}

var monthsGenitive = [...]string{"", "января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря"}

var templateFuncs = template.FuncMap{
	"roubles": models.FormatRoubles,
	"join":    strings.Join,
	"deliveryDate": func(days int) string {
		return DeliveryDate(time.Now(), days)
	},
}

// DeliveryDate renders the day a delivery lands, the way product cards show it
func DeliveryDate(now time.Time, days int) string {
	switch days {
	case 0:
		return "сегодня"
	case 1:
		return "завтра"
	}
	d := now.AddDate(0, 0, days)
	return fmt.Sprintf("%d %s", d.Day(), monthsGenitive[d.Month()])
}

// parseTemplate parses a page template together with the partials file next to it
func parseTemplate(templatePath string) (*template.Template, error) {
	if templatePath == "" {
		return nil, fmt.Errorf("template path is required")
	}
	partials := filepath.Join(filepath.Dir(templatePath), PartialsFile)
	return template.New(filepath.Base(templatePath)).Funcs(templateFuncs).ParseFiles(templatePath, partials)
}

// basketID returns the visitor's basket id, issuing a new one when the
// cookie is missing or malformed
func basketID(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if c, err := r.Cookie(BasketCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id
		}
	}

	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     BasketCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func header(basket services.BasketService, id uuid.UUID, query string) Header {
	return Header{Query: query, BasketCount: basket.Count(id)}
}
