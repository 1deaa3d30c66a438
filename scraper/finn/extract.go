package finn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"boligbudsjett/models"
)

var (
	// areaRegexp captures the integer of "62 m²" (or "62 m2"), including
	// space-grouped thousands as in "1 200 m²".
	areaRegexp = regexp.MustCompile(`(\d{1,3}(?: \d{3})+|\d+)\s*m[²2]`)
	// internalAreaRegexp matches a value explicitly marked as BRA-i.
	internalAreaRegexp = regexp.MustCompile(`(\d{1,3}(?: \d{3})+|\d+)\s*m[²2]\s*\(BRA-i\)`)
	// externalAreaMarker matches a value explicitly marked as BRA-e.
	externalAreaMarker = regexp.MustCompile(`\(BRA-e\)`)
)

// fieldRule maps one kind of label to a record field. Rules are tried in
// order and the first match consumes the label/value pair, whether or not
// its value coerces.
type fieldRule struct {
	name  string
	match func(label, value string) bool
	apply func(rec *models.PropertyRecord, label, value string)
}

var fieldRules = []fieldRule{
	{
		name:  "total price",
		match: labelHas("totalpris"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.TotalPrice, digitsInt64(v)) },
	},
	{
		name:  "asking price",
		match: labelHas("prisantydning"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.Price, digitsInt64(v)) },
	},
	{
		name:  "shared debt",
		match: labelHas("fellesgjeld"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.SharedDebt, digitsInt64(v)) },
	},
	// Internal area must win over total area: a "bruksareal" value marked
	// "(BRA-i)" is never counted as total usable area.
	{
		name: "internal usable area",
		match: func(l, v string) bool {
			return strings.Contains(l, "bruksareal") && internalAreaRegexp.MatchString(v)
		},
		apply: func(r *models.PropertyRecord, _, v string) {
			set(&r.BRAInternal, parseAreaInt(internalAreaRegexp, v))
		},
	},
	// External area still counts as total usable area; it is recorded
	// separately as well.
	{
		name: "external usable area",
		match: func(l, v string) bool {
			return strings.Contains(l, "bruksareal") && !strings.Contains(l, "primær") &&
				(externalAreaMarker.MatchString(v) || strings.Contains(l, "eksternt"))
		},
		apply: func(r *models.PropertyRecord, _, v string) {
			a := area(v)
			set(&r.BRAExternal, a)
			set(&r.BRATotal, a)
		},
	},
	{
		name: "total usable area",
		match: func(l, _ string) bool {
			return strings.Contains(l, "bruksareal") && !strings.Contains(l, "primær")
		},
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.BRATotal, area(v)) },
	},
	{
		name: "primary room area",
		match: func(l, _ string) bool {
			return strings.Contains(l, "bruksareal") ||
				strings.Contains(l, "primærrom") || strings.Contains(l, "p-rom")
		},
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.Size, area(v)) },
	},
	{
		name:  "year built",
		match: labelHas("byggeår"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.YearBuilt, digitsInt(v)) },
	},
	{
		name:  "property type",
		match: labelHas("boligtype"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.PropertyType, text(v)) },
	},
	{
		name:  "ownership type",
		match: labelHas("eieform"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.OwnershipType, text(v)) },
	},
	{
		name:  "floor",
		match: labelHas("etasje"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.Floor, digitsInt(v)) },
	},
	{
		name:  "bedrooms",
		match: labelHas("soverom"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.Bedrooms, digitsInt(v)) },
	},
	// "rom" also occurs in "soverom"; bedrooms are handled above and the
	// explicit "sove" guard keeps the two counts apart.
	{
		name: "rooms",
		match: func(l, _ string) bool {
			return strings.Contains(l, "rom") && !strings.Contains(l, "sove")
		},
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.Rooms, firstTokenInt(v)) },
	},
	{
		name: "balcony",
		match: func(l, _ string) bool {
			return strings.Contains(l, "balkong") || strings.Contains(l, "terrasse")
		},
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.BalconySize, area(v)) },
	},
	{
		name:  "energy rating",
		match: labelHas("energimerking"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.EnergyRating, text(v)) },
	},
	{
		name:  "plot size",
		match: labelHas("tomteareal"),
		apply: func(r *models.PropertyRecord, _, v string) { set(&r.PlotSize, area(v)) },
	},
}

// Extract parses a listing document into a PropertyRecord. Fields whose
// label is missing, or whose value does not coerce, are left nil.
func Extract(html string) (rec models.PropertyRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			rec = models.PropertyRecord{}
			err = &ParseError{Err: fmt.Errorf("%v", p)}
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.PropertyRecord{}, &ParseError{Err: err}
	}

	var currentLabel string
	haveLabel := false

	doc.Find("dt, dd").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "dt":
			currentLabel = strings.ToLower(normaliseText(s.Text()))
			haveLabel = currentLabel != ""
		case "dd":
			if !haveLabel {
				return
			}
			applyRules(&rec, currentLabel, normaliseText(s.Text()))
		}
	})

	rec.Address = extractAddress(doc)
	return rec, nil
}

// set assigns v unless it is nil, so a later unparsable value never
// clears a field that already parsed cleanly.
func set[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func applyRules(rec *models.PropertyRecord, label, value string) {
	for _, rule := range fieldRules {
		if rule.match(label, value) {
			rule.apply(rec, label, value)
			return
		}
	}
}

// extractAddress prefers the listing's styled heading, then any h1.
func extractAddress(doc *goquery.Document) *string {
	heading := doc.Find("h1.u-t3").First()
	if heading.Length() == 0 {
		heading = doc.Find("h1").First()
	}
	if heading.Length() == 0 {
		return nil
	}
	return text(heading.Text())
}

func labelHas(fragment string) func(label, value string) bool {
	return func(label, _ string) bool {
		return strings.Contains(label, fragment)
	}
}

// digitsInt64 keeps only ASCII digits and parses the rest: "3 450 000 kr" -> 3450000.
func digitsInt64(s string) *int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func digitsInt(s string) *int {
	n := digitsInt64(s)
	if n == nil || *n > int64(^uint32(0)>>1) {
		return nil
	}
	v := int(*n)
	return &v
}

// firstTokenInt parses the first whitespace-delimited token: "3 rom" -> 3.
func firstTokenInt(s string) *int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func area(s string) *float64 {
	return parseAreaInt(areaRegexp, s)
}

func parseAreaInt(re *regexp.Regexp, s string) *float64 {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], " ", ""), 64)
	if err != nil {
		return nil
	}
	return &n
}

func text(s string) *string {
	s = normaliseText(s)
	if s == "" {
		return nil
	}
	return &s
}

// normaliseText strips leading/trailing whitespace and collapses internal
// whitespace, non-breaking spaces included.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
