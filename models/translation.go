package models

import (
	"encoding/json"
	"strings"
)

// Translation modes requested by the client.
const (
	ModeMenu    = "menu"
	ModeSign    = "sign"
	ModeGeneral = "general"
)

// Language codes accepted in requests.
const (
	LangThai    = "th"
	LangChinese = "zh"
)

// TranslateRequest carries either a base64-encoded JPEG photo or a text
// snippet, plus optional hints about how to treat it.
type TranslateRequest struct {
	Image      string `json:"image"`
	Text       string `json:"text"`
	Mode       string `json:"mode"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// Normalize trims the text and fills in the documented defaults for the
// optional hint fields. Unknown values fall back rather than erroring so
// older clients keep working.
func (r *TranslateRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
	r.Image = strings.TrimSpace(r.Image)

	if r.SourceLang != LangChinese {
		r.SourceLang = LangThai
	}
	switch r.Mode {
	case ModeMenu, ModeSign, ModeGeneral:
	case "":
		if r.HasImage() {
			r.Mode = ModeMenu
		} else {
			r.Mode = ModeGeneral
		}
	default:
		r.Mode = ModeGeneral
	}
	if r.TargetLang == "" {
		if r.SourceLang == LangThai {
			r.TargetLang = LangChinese
		} else {
			r.TargetLang = LangThai
		}
	}
}

// HasImage reports whether the request carries image data. When both image
// and text are present the image wins.
func (r *TranslateRequest) HasImage() bool {
	return r.Image != ""
}

// HasText reports whether the request carries a text snippet.
func (r *TranslateRequest) HasText() bool {
	return r.Text != ""
}

// ItemID tolerates the id coming back from a model as either a JSON number
// or a string. Numeric values round-trip back out as numbers.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ItemID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ItemID(s)
	return nil
}

func (id ItemID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if s == "" {
		return []byte("0"), nil
	}
	var n json.Number
	if json.Unmarshal([]byte(s), &n) == nil {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// TranslationItem is one translated unit: a dish on a menu, a line on a
// sign, or the whole snippet for plain text.
type TranslationItem struct {
	ID                ItemID   `json:"id"`
	Thai              string   `json:"thai"`
	Zh                string   `json:"zh"`
	Roman             string   `json:"roman,omitempty"`
	Price             string   `json:"price,omitempty"`
	Desc              string   `json:"desc,omitempty"`
	IsSpicy           bool     `json:"isSpicy"`
	ContainsShellfish bool     `json:"containsShellfish"`
	Tags              []string `json:"tags,omitempty"`
	Category          string   `json:"category,omitempty"`
}

// TranslateResponse is the success payload.
type TranslateResponse struct {
	Items []TranslationItem `json:"items"`
}
