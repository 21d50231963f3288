package storefront

import (
	"strings"

	"golang.org/x/text/language"
)

// InContext is the buyer context passed to the @inContext directive.
type InContext struct {
	Country  string `json:"country"`
	Language string `json:"language"`
}

// IsZero reports whether no context is set.
func (c InContext) IsZero() bool {
	return c.Country == "" && c.Language == ""
}

// ParseLocale converts a locale path segment such as "ja-JP" or "en-us" into
// an InContext. When the region is missing it is inferred from the language
// ("ja" gives JP). An unparseable locale yields ok=false.
func ParseLocale(locale string) (InContext, bool) {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return InContext{}, false
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return InContext{}, false
	}

	base, conf := tag.Base()
	if conf == language.No {
		return InContext{}, false
	}
	ctx := InContext{Language: strings.ToUpper(base.String())}

	if region, conf := tag.Region(); conf != language.No && region.IsCountry() {
		ctx.Country = region.String()
	}
	return ctx, true
}

// ResolveLocale is ParseLocale with a fallback locale for empty or invalid input.
func ResolveLocale(locale, fallback string) InContext {
	if ctx, ok := ParseLocale(locale); ok {
		return ctx
	}
	ctx, _ := ParseLocale(fallback)
	return ctx
}

func (c InContext) variables() map[string]any {
	vars := make(map[string]any, 2)
	if c.Country != "" {
		vars["country"] = c.Country
	}
	if c.Language != "" {
		vars["language"] = c.Language
	}
	return vars
}
