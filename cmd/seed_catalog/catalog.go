package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/berlivn/eriflex-api/internal/domain/busbar"
	"github.com/berlivn/eriflex-api/internal/domain/entity"
)

// catalogRow one component with the axes of its variants.
type catalogRow struct {
	Info      entity.ComponentInfo
	Thickness []int
	Width     []int
	Poles     []int
	Shape     []string
}

var requiredColumns = []string{"key", "nbphase", "thickness", "width", "poles", "shape"}

// readCatalog parses the export. Columns are matched by header name, case-insensitively.
// Input that is not valid UTF-8 is decoded as ISO-8859-1.
func readCatalog(r io.Reader) ([]catalogRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var rows []catalogRow
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("key") == "" {
			continue
		}
		row, err := parseRow(get)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(get func(string) string) (catalogRow, error) {
	var row catalogRow
	var err error
	ints := map[string]*int{}
	info := &row.Info
	info.Key = get("key")
	info.TypeSupport = get("typesupport")
	info.Img1Article = get("img1article")
	info.Img2Article = get("img2article")
	info.NumArt = get("numart")
	info.Info = get("info")
	info.AList = get("a_list")
	ints["nbphase"] = &info.NbPhase
	ints["amini"] = &info.Amini
	ints["amaxi"] = &info.Amaxi
	ints["angle"] = &info.Angle
	ints["resmini"] = &info.Resmini
	ints["bmini"] = &info.Bmini
	ints["largeurmodule"] = &info.LargeurModule
	for name, dst := range ints {
		if *dst, err = optionalInt(get(name)); err != nil {
			return row, fmt.Errorf("%s: %w", name, err)
		}
	}
	if info.NbPhase < 1 {
		return row, fmt.Errorf("nbphase must be >= 1")
	}
	if get("amini") == "" {
		info.Amini = busbar.Amini(info.AList)
	}
	if price := get("unit_price"); price != "" {
		if info.UnitPrice, err = decimal.NewFromString(strings.ReplaceAll(price, ",", ".")); err != nil {
			return row, fmt.Errorf("unit_price: %w", err)
		}
		info.UnitPrice = info.UnitPrice.Round(2)
	}

	if row.Thickness, err = intList(get("thickness")); err != nil {
		return row, fmt.Errorf("thickness: %w", err)
	}
	if row.Width, err = intList(get("width")); err != nil {
		return row, fmt.Errorf("width: %w", err)
	}
	if row.Poles, err = intList(get("poles")); err != nil {
		return row, fmt.Errorf("poles: %w", err)
	}
	row.Shape = stringList(get("shape"))
	return row, nil
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func stringList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intList(s string) ([]int, error) {
	parts := stringList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// writeSeed emits one upsert per info row and a delete+insert of its variants,
// so running the script twice leaves the same data. Returns the number of variants.
func writeSeed(w io.Writer, rows []catalogRow, source string) (int, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Catalog seed generated from %s\n\n", source)

	total := 0
	for _, row := range rows {
		ci := row.Info
		fmt.Fprintf(&b, "-- %s (nbphase %d)\n", ci.Key, ci.NbPhase)
		b.WriteString("INSERT INTO components_info (key, nbphase, amini, amaxi, angle, resmini, typesupport, bmini, largeurmodule, img1_article, img2_article, numart, info, a_list, unit_price)\n")
		fmt.Fprintf(&b, "VALUES (%s, %d, %d, %d, %d, %d, %s, %d, %d, %s, %s, %s, %s, %s, %s)\n",
			quote(ci.Key), ci.NbPhase, ci.Amini, ci.Amaxi, ci.Angle, ci.Resmini, quote(ci.TypeSupport),
			ci.Bmini, ci.LargeurModule, quote(ci.Img1Article), quote(ci.Img2Article), quote(ci.NumArt),
			quote(ci.Info), quote(ci.AList), ci.UnitPrice.StringFixed(2))
		b.WriteString("ON CONFLICT (key, nbphase) DO UPDATE SET\n")
		b.WriteString("  amini = EXCLUDED.amini, amaxi = EXCLUDED.amaxi, angle = EXCLUDED.angle, resmini = EXCLUDED.resmini,\n")
		b.WriteString("  typesupport = EXCLUDED.typesupport, bmini = EXCLUDED.bmini, largeurmodule = EXCLUDED.largeurmodule,\n")
		b.WriteString("  img1_article = EXCLUDED.img1_article, img2_article = EXCLUDED.img2_article, numart = EXCLUDED.numart,\n")
		b.WriteString("  info = EXCLUDED.info, a_list = EXCLUDED.a_list, unit_price = EXCLUDED.unit_price;\n")

		fmt.Fprintf(&b, "DELETE FROM components_list WHERE component_id = %s AND nbphase = %d;\n", quote(ci.Key), ci.NbPhase)
		variants := busbar.Combinations(ci.Key, ci.NbPhase, row.Thickness, row.Width, row.Poles, row.Shape)
		if len(variants) > 0 {
			b.WriteString("INSERT INTO components_list (nbphase, thickness, width, poles, shape, component_id) VALUES\n")
			for i, v := range variants {
				sep := ","
				if i == len(variants)-1 {
					sep = ";"
				}
				fmt.Fprintf(&b, "  (%d, %d, %d, %d, %s, %s)%s\n", v.NbPhase, v.Thickness, v.Width, v.Poles, quote(v.Shape), quote(v.ComponentID), sep)
			}
		}
		b.WriteString("\n")
		total += len(variants)
	}
	_, err := io.WriteString(w, b.String())
	return total, err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
