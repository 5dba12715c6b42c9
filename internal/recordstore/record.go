package recordstore

import (
	"time"

	"github.com/bogo-app/bogo/internal/report"
)

// page mirrors the store's page JSON. Every property is optional: the
// mapping must tolerate pages with missing title, content, keywords or
// session without failing.
type page struct {
	ID             string         `json:"id"`
	CreatedTime    time.Time      `json:"created_time"`
	LastEditedTime time.Time      `json:"last_edited_time"`
	Archived       bool           `json:"archived"`
	Properties     pageProperties `json:"properties"`
}

type pageProperties struct {
	Title    *titleProperty       `json:"Title,omitempty"`
	Type     *selectProperty      `json:"type,omitempty"`
	Session  *selectProperty      `json:"session,omitempty"`
	Content  *richTextProperty    `json:"content,omitempty"`
	Keywords *multiSelectProperty `json:"keywords,omitempty"`
	Status   *selectProperty      `json:"status,omitempty"`
}

type titleProperty struct {
	Title []richTextSpan `json:"title"`
}

type richTextProperty struct {
	RichText []richTextSpan `json:"rich_text"`
}

// richTextSpan carries plain_text on reads and text.content on writes.
type richTextSpan struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *textContent `json:"text,omitempty"`
}

type textContent struct {
	Content string `json:"content"`
}

type selectProperty struct {
	Select *selectOption `json:"select"`
}

type selectOption struct {
	Name string `json:"name"`
}

type multiSelectProperty struct {
	MultiSelect []selectOption `json:"multi_select"`
}

func spanText(spans []richTextSpan) string {
	if len(spans) == 0 {
		return ""
	}
	s := spans[0]
	if s.PlainText != "" {
		return s.PlainText
	}
	if s.Text != nil {
		return s.Text.Content
	}
	return ""
}

func textSpans(s string) []richTextSpan {
	return []richTextSpan{{Text: &textContent{Content: s}}}
}

// toReport maps a page to the domain report, applying defaults for
// anything the page omits.
func (p page) toReport() report.Report {
	r := report.Report{
		ID:        p.ID,
		Type:      report.TypeDaily,
		Keywords:  []string{},
		CreatedAt: p.CreatedTime,
		UpdatedAt: p.LastEditedTime,
		Status:    report.StatusDraft,
	}

	props := p.Properties
	if props.Type != nil && props.Type.Select != nil {
		r.Type = report.Type(props.Type.Select.Name)
	}
	if props.Session != nil && props.Session.Select != nil {
		r.Session = report.Session(props.Session.Select.Name)
	}
	if props.Title != nil {
		r.Title = spanText(props.Title.Title)
	}
	if props.Content != nil {
		r.Content = spanText(props.Content.RichText)
	}
	if props.Keywords != nil {
		for _, opt := range props.Keywords.MultiSelect {
			r.Keywords = append(r.Keywords, opt.Name)
		}
	}
	if props.Status != nil && props.Status.Select != nil {
		r.Status = report.Status(props.Status.Select.Name)
	}
	return r
}

// propertiesFromFields builds the property payload for a create or
// partial update. Nil fields are left out entirely so the store keeps
// the existing values.
func propertiesFromFields(f report.Fields) pageProperties {
	var props pageProperties
	if f.Title != nil {
		props.Title = &titleProperty{Title: textSpans(*f.Title)}
	}
	if f.Type != nil {
		props.Type = &selectProperty{Select: &selectOption{Name: string(*f.Type)}}
	}
	if f.Session != nil {
		props.Session = &selectProperty{Select: &selectOption{Name: string(*f.Session)}}
	}
	if f.Content != nil {
		props.Content = &richTextProperty{RichText: textSpans(*f.Content)}
	}
	if f.Keywords != nil {
		opts := make([]selectOption, len(*f.Keywords))
		for i, kw := range *f.Keywords {
			opts[i] = selectOption{Name: kw}
		}
		props.Keywords = &multiSelectProperty{MultiSelect: opts}
	}
	if f.Status != nil {
		props.Status = &selectProperty{Select: &selectOption{Name: string(*f.Status)}}
	}
	return props
}
