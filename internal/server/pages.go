package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/atmdb/atmdb/pkg/catalog"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

var typeColors = map[string]string{
	"normal":   "bg-stone-500",
	"fire":     "bg-orange-600",
	"water":    "bg-blue-600",
	"grass":    "bg-green-600",
	"electric": "bg-yellow-500",
	"ice":      "bg-cyan-500",
	"fighting": "bg-red-700",
	"poison":   "bg-purple-600",
	"ground":   "bg-amber-700",
	"flying":   "bg-indigo-400",
	"psychic":  "bg-pink-500",
	"bug":      "bg-lime-600",
	"rock":     "bg-yellow-800",
	"ghost":    "bg-violet-800",
	"dragon":   "bg-indigo-700",
	"dark":     "bg-neutral-800",
	"steel":    "bg-slate-500",
	"fairy":    "bg-pink-300",
}

var rarityColors = map[catalog.Rarity]string{
	catalog.Common:    "text-slate-300",
	catalog.Uncommon:  "text-emerald-400",
	catalog.Rare:      "text-sky-400",
	catalog.UltraRare: "text-fuchsia-400",
}

func pageLayout(title string, content g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Head(
				Meta(Charset("UTF-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(title)),
				Script(Src("https://cdn.tailwindcss.com")),
				Script(Src("https://unpkg.com/htmx.org@2.0.4")),
			),
			Body(Class("bg-slate-950 font-sans antialiased flex flex-col min-h-screen text-slate-300"),
				Div(Class("bg-slate-900 border-b border-slate-800 px-6 py-4"),
					A(Href("/species"), Class("text-xl font-bold text-slate-100"), g.Text("atmdb")),
				),
				Div(Class("flex-grow container mx-auto px-4 py-8"), content),
			),
		),
	})
}

func speciesURL(v catalog.View) string {
	q := url.Values{}
	if v.Text != "" {
		q.Set("search", v.Text)
	}
	q.Set("sortBy", v.Sort.String())
	q.Set("sortOrder", v.Order())
	return "/species?" + q.Encode()
}

func detailURL(r catalog.Record) string {
	u := fmt.Sprintf("/species/%d", r.Number)
	if r.Form != "" {
		u += "?form=" + url.QueryEscape(r.Form)
	}
	return u
}

func speciesContent(records []catalog.Record, view catalog.View, suggestions []string, loadErr error) g.Node {
	return Div(
		H1(Class("text-3xl font-bold text-slate-100 mb-6"), g.Text("Species")),
		g.If(loadErr != nil,
			Div(ID("load-error"), Class("mb-6 rounded-lg border border-red-700 bg-red-950/50 px-4 py-3 text-red-300"),
				g.Text("Could not load codex data. "+errText(loadErr)),
			),
		),
		Div(Class("mb-4"),
			Input(Type("search"), Name("search"), Value(view.Text),
				Placeholder("Search species"),
				Class("w-full rounded-lg bg-slate-800 border border-slate-700 px-4 py-2 text-slate-100"),
				g.Attr("hx-get", "/species"),
				g.Attr("hx-trigger", "keyup changed delay:300ms, search"),
				g.Attr("hx-target", "#species-table-container"),
				g.Attr("hx-push-url", "true"),
				g.Attr("hx-include", "[name='sortBy'],[name='sortOrder']"),
			),
		),
		Div(ID("species-table-container"), speciesTableInner(records, view, suggestions)),
	)
}

// errText guards g.If, which evaluates its node eagerly.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func speciesTableInner(records []catalog.Record, view catalog.View, suggestions []string) g.Node {
	sortIndicator := func(key catalog.SortKey) string {
		if view.Sort != key {
			return ""
		}
		if view.Ascending {
			return " ▲"
		}
		return " ▼"
	}

	header := func(label string, key catalog.SortKey) g.Node {
		href := speciesURL(view.ToggleSort(key))
		return Th(Class("px-3 py-3 text-left text-xs font-semibold text-slate-500 uppercase tracking-wider"),
			A(Href(href),
				g.Attr("hx-get", href),
				g.Attr("hx-target", "#species-table-container"),
				g.Attr("hx-push-url", "true"),
				g.Attr("data-sort", key.String()),
				Class("hover:text-slate-200"),
				g.Text(label+sortIndicator(key)),
			),
		)
	}
	plain := func(label string) g.Node {
		return Th(Class("px-3 py-3 text-left text-xs font-semibold text-slate-500 uppercase tracking-wider"), g.Text(label))
	}

	headers := Tr(
		header("#", catalog.SortNumber),
		header("Name", catalog.SortName),
		header("In game", catalog.SortImplemented),
		plain("Type"),
		plain("Pre-evolution"),
		plain("Evolutions"),
		plain("Labels"),
		header("Catch rate", catalog.SortCatchRate),
		header("Male ratio", catalog.SortMaleRatio),
		header("Rarity", catalog.SortRarity),
		header("Source", catalog.SortSource),
		header("Spawns", catalog.SortSpawns),
	)

	var rows []g.Node
	if len(records) == 0 {
		msg := "No species to display."
		if view.Text != "" {
			msg = fmt.Sprintf("No species found for '%s'.", view.Text)
		}
		rows = append(rows, Tr(Td(ColSpan("12"), Class("text-center py-16 text-slate-500"),
			Div(Class("flex flex-col items-center gap-3"),
				Span(g.Text(msg)),
				g.If(len(suggestions) > 0, suggestionList(view, suggestions)),
			),
		)))
	}
	for i, r := range records {
		rowBg := ""
		if i%2 == 1 {
			rowBg = " bg-slate-800/20"
		}
		link := detailURL(r)
		rows = append(rows, Tr(
			Class("species-row border-b border-slate-800/50 hover:bg-slate-800/50 cursor-pointer"+rowBg),
			g.Attr("data-key", r.Key()),
			g.Attr("onclick", fmt.Sprintf("window.location.href='%s'", link)),
			Td(Class("px-3 py-2 text-sm font-mono text-slate-400"), g.Text(fmt.Sprintf("%04d", r.Number))),
			Td(Class("px-3 py-2 text-sm"),
				A(Href(link), Class("font-medium text-slate-100 hover:text-cyan-400"), g.Text(r.Name)),
				g.If(r.Form != "", Span(Class("ml-2 text-xs text-slate-400"), g.Text("("+r.Form+")"))),
			),
			Td(Class("px-3 py-2 text-sm"), implementedBadge(r.Implemented)),
			Td(Class("px-3 py-2 text-sm"), typeBadges(r.Types)),
			Td(Class("px-3 py-2 text-sm"), g.Text(orNA(r.PreEvolution))),
			Td(Class("px-3 py-2 text-sm"), g.Text(orNA(strings.Join(r.Evolutions, ", ")))),
			Td(Class("px-3 py-2 text-sm labels"), g.Text(orNA(strings.Join(r.Labels, ", ")))),
			Td(Class("px-3 py-2 text-sm"), g.Text(catchRateText(r.CatchRate))),
			Td(Class("px-3 py-2 text-sm"), g.Text(maleRatioText(r.MaleRatio))),
			Td(Class("px-3 py-2 text-sm"), rarityBadge(r.Rarity)),
			Td(Class("px-3 py-2 text-sm"), g.Text(orNA(r.Source))),
			Td(Class("px-3 py-2 text-sm text-center"), g.Text(strconv.Itoa(len(r.Spawns)))),
		))
	}

	// The sort state travels with every swap so the search box includes the
	// current column and direction.
	return Div(
		Input(Type("hidden"), Name("sortBy"), Value(view.Sort.String())),
		Input(Type("hidden"), Name("sortOrder"), Value(view.Order())),
		P(Class("mb-2 text-sm text-slate-500"), g.Textf("%d records", len(records))),
		Div(Class("overflow-x-auto rounded-xl border border-slate-700/50"),
			Table(Class("min-w-full divide-y divide-slate-700"),
				THead(Class("bg-slate-800/80"), headers),
				TBody(Class("bg-slate-900/50 divide-y divide-slate-800"), g.Group(rows)),
			),
		),
	)
}

func suggestionList(view catalog.View, suggestions []string) g.Node {
	var links []g.Node
	for i, s := range suggestions {
		if i > 0 {
			links = append(links, g.Text(", "))
		}
		links = append(links, A(Class("suggestion text-cyan-400 hover:underline"),
			Href(speciesURL(view.WithText(s))), g.Text(s)))
	}
	return Div(Span(g.Text("Did you mean: ")), g.Group(links))
}

func implementedBadge(ok bool) g.Node {
	if ok {
		return Span(Class("text-emerald-400 font-medium"), g.Text("Yes"))
	}
	return Span(Class("text-slate-500"), g.Text("No"))
}

func typeBadges(types []string) g.Node {
	var nodes []g.Node
	for _, t := range types {
		color, ok := typeColors[strings.ToLower(t)]
		if !ok {
			color = "bg-slate-600"
		}
		nodes = append(nodes, Span(Class("mr-1 rounded px-2 py-0.5 text-xs font-semibold text-white "+color), g.Text(t)))
	}
	return g.Group(nodes)
}

func rarityBadge(r catalog.Rarity) g.Node {
	color, ok := rarityColors[r]
	if !ok {
		color = "text-slate-500"
	}
	return Span(Class("font-medium "+color), g.Text(catalog.CapitalizeWords(strings.ReplaceAll(r.String(), "-", " "))))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func catchRateText(rate *int) string {
	if rate == nil {
		return "N/A"
	}
	return strconv.Itoa(*rate)
}

func maleRatioText(ratio *float64) string {
	if ratio == nil {
		return "N/A"
	}
	if *ratio < 0 {
		return "Genderless"
	}
	return strconv.FormatFloat(*ratio*100, 'f', -1, 64) + "%"
}

func detailContent(r catalog.Record) g.Node {
	title := r.Name
	if r.Form != "" {
		title += " (" + r.Form + ")"
	}

	var statRows []g.Node
	for _, s := range r.Stats {
		statRows = append(statRows, Tr(
			Td(Class("pr-6 py-1 text-slate-400"), g.Text(s.Name)),
			Td(Class("py-1 font-mono text-slate-100"), g.Text(strconv.Itoa(s.Value))),
		))
	}

	var spawnRows []g.Node
	for _, s := range r.Spawns {
		spawnRows = append(spawnRows, Tr(Class("spawn-row border-b border-slate-800/50"),
			Td(Class("px-3 py-2"), g.Text(s.Name)),
			Td(Class("px-3 py-2"), g.Text(s.Bucket)),
			Td(Class("px-3 py-2 font-mono"), g.Text(s.Level.String())),
			Td(Class("px-3 py-2 font-mono"), g.Text(strconv.FormatFloat(s.Weight, 'f', -1, 64))),
			Td(Class("px-3 py-2"), g.Text(s.Context)),
			Td(Class("px-3 py-2"), g.Text(strings.Join(s.Biomes, ", "))),
			Td(Class("px-3 py-2 text-xs"), g.Text(s.Conditions)),
			Td(Class("px-3 py-2 text-xs"), g.Text(s.Anticonditions)),
		))
	}

	field := func(label string, value g.Node) g.Node {
		return Div(Class("py-1"),
			Span(Class("inline-block w-36 text-slate-500"), g.Text(label)),
			value,
		)
	}

	return Div(
		A(Href("/species"), Class("text-sm text-cyan-400 hover:underline"), g.Text("← Back to species")),
		H1(Class("mt-4 text-3xl font-bold text-slate-100"),
			Span(Class("mr-3 font-mono text-slate-500"), g.Text(fmt.Sprintf("#%04d", r.Number))),
			g.Text(title),
		),
		Div(Class("mt-6 grid gap-8 md:grid-cols-2"),
			Div(
				field("Type", typeBadges(r.Types)),
				field("In game", implementedBadge(r.Implemented)),
				field("Rarity", rarityBadge(r.Rarity)),
				field("Source", g.Text(orNA(r.Source))),
				field("Abilities", g.Text(orNA(strings.Join(r.Abilities, ", ")))),
				field("Pre-evolution", g.Text(orNA(r.PreEvolution))),
				field("Evolutions", g.Text(orNA(strings.Join(r.Evolutions, ", ")))),
				field("Catch rate", g.Text(catchRateText(r.CatchRate))),
				field("Male ratio", g.Text(maleRatioText(r.MaleRatio))),
				g.If(len(r.Labels) > 0, field("Labels", g.Text(strings.Join(r.Labels, ", ")))),
				g.If(len(r.Aspects) > 0, field("Aspects", g.Text(strings.Join(r.Aspects, ", ")))),
			),
			g.If(len(statRows) > 0, Div(
				H2(Class("mb-2 text-lg font-semibold text-slate-100"), g.Text("Base stats")),
				Table(TBody(g.Group(statRows))),
			)),
		),
		H2(Class("mt-8 mb-2 text-lg font-semibold text-slate-100"), g.Textf("Spawns (%d)", len(r.Spawns))),
		g.If(len(spawnRows) == 0, P(Class("text-slate-500"), g.Text("No spawn data."))),
		g.If(len(spawnRows) > 0, Div(Class("overflow-x-auto rounded-xl border border-slate-700/50"),
			Table(Class("min-w-full text-sm"),
				THead(Class("bg-slate-800/80 text-xs uppercase text-slate-500"), Tr(
					Th(Class("px-3 py-2 text-left"), g.Text("Pokémon")),
					Th(Class("px-3 py-2 text-left"), g.Text("Bucket")),
					Th(Class("px-3 py-2 text-left"), g.Text("Level")),
					Th(Class("px-3 py-2 text-left"), g.Text("Weight")),
					Th(Class("px-3 py-2 text-left"), g.Text("Context")),
					Th(Class("px-3 py-2 text-left"), g.Text("Biomes")),
					Th(Class("px-3 py-2 text-left"), g.Text("Conditions")),
					Th(Class("px-3 py-2 text-left"), g.Text("Anticonditions")),
				)),
				TBody(g.Group(spawnRows)),
			),
		)),
	)
}

func notFoundContent() g.Node {
	return Div(Class("text-center py-16"),
		H1(Class("text-3xl font-bold text-slate-100"), g.Text("Species not found")),
		P(Class("mt-4"), A(Href("/species"), Class("text-cyan-400 hover:underline"), g.Text("Back to species"))),
	)
}
