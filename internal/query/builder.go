// Package query builds raw query strings for the Twitter standard search API.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const DefaultCount = 100

// Mode is the tweet_mode parameter. Twitter calls the normal, truncated
// mode "compat".
type Mode string

const (
	ModeNormal   Mode = "compat"
	ModeExtended Mode = "extended"
)

// Filter is a content type excluded from results with "-filter:<name>".
type Filter string

const (
	FilterRetweets Filter = "retweets"
	FilterReplies  Filter = "replies"
	FilterLinks    Filter = "links"
	FilterMedia    Filter = "media"
)

// DefaultFilters drops retweets, replies and anything carrying a link or media.
var DefaultFilters = []Filter{FilterRetweets, FilterReplies, FilterLinks, FilterMedia}

var validate = validator.New()

// SearchQuery is an immutable description of one search request.
type SearchQuery struct {
	Phrase  string   `validate:"required"`
	Count   int      `validate:"min=1,max=100"`
	Mode    Mode     `validate:"oneof=compat extended"`
	Filters []Filter `validate:"dive,oneof=retweets replies links media"`
}

// Builder holds the fixed parameters applied to every phrase.
type Builder struct {
	Count   int
	Mode    Mode
	Filters []Filter
}

func DefaultBuilder() Builder {
	return Builder{
		Count:   DefaultCount,
		Mode:    ModeExtended,
		Filters: DefaultFilters,
	}
}

// NewBuilder returns a Builder with the default filter set. A non-positive
// count falls back to DefaultCount and an empty mode to ModeExtended.
func NewBuilder(count int, mode string) Builder {
	b := DefaultBuilder()
	if count > 0 {
		b.Count = count
	}
	if mode != "" {
		b.Mode = Mode(mode)
	}
	return b
}

func (b Builder) Build(phrase string) SearchQuery {
	return SearchQuery{
		Phrase:  phrase,
		Count:   b.Count,
		Mode:    b.Mode,
		Filters: append([]Filter(nil), b.Filters...),
	}
}

func (q SearchQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("[Query] invalid search query: %w", err)
	}
	return nil
}

// FilterClause renders the filters as " -filter:a AND -filter:b". The leading
// space separates the clause from the phrase. No filters yields "".
func (q SearchQuery) FilterClause() string {
	if len(q.Filters) == 0 {
		return ""
	}
	parts := make([]string, len(q.Filters))
	for i, f := range q.Filters {
		parts[i] = "-filter:" + string(f)
	}
	return " " + strings.Join(parts, " AND ")
}

// Encode returns q=<phrase><filters>&count=<n>&tweet_mode=<mode>. Values are
// form-encoded, so '&' and '=' only ever appear raw as delimiters.
func (q SearchQuery) Encode() string {
	var sb strings.Builder
	sb.WriteString("q=")
	sb.WriteString(url.QueryEscape(q.Phrase + q.FilterClause()))
	sb.WriteString("&count=")
	sb.WriteString(strconv.Itoa(q.Count))
	sb.WriteString("&tweet_mode=")
	sb.WriteString(url.QueryEscape(string(q.Mode)))
	return sb.String()
}
