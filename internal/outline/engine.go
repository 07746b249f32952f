package outline

// FromRuns assembles a document outline from positioned text runs. The
// pipeline is deterministic: reading-order sort, line assembly, one
// immutable context, furniture detection, title selection, per-line
// classification, then duplicate resolution. Outline entries come out in
// non-decreasing page order because lines do. The runs slice is reordered
// in place.
func FromRuns(runs []TextRun, cfg Config) *Document {
	doc := NewDocument()
	if len(runs) == 0 {
		return doc
	}

	SortRuns(runs, cfg.LineYTolerance)
	lines := BuildLines(runs, cfg)
	if len(lines) == 0 {
		return doc
	}

	ctx := NewContext(lines)
	furn := furnitureFlags(lines, cfg)

	title, titleIdx := SelectTitle(lines, furn, cfg)
	doc.Title = title

	for i, ln := range lines {
		if i == titleIdx || furn[i] {
			continue
		}
		fv := Analyze(ln, ctx)
		d := Classify(fv, ctx, cfg)
		if !d.Heading {
			continue
		}
		doc.Outline = append(doc.Outline, Heading{Level: d.Level, Text: fv.Text, Page: ln.Page})
	}

	doc.Outline = Resolve(doc.Outline)
	return doc
}
