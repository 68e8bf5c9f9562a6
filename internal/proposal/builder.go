// Package proposal renders the PDF project proposal sent to prospects.
package proposal

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	brandName     = "NOTCH"
	brandTagline  = "Software Development & AI Solutions"
	footerCompany = "Notch Software Development"
	footerWebsite = "www.wearenotch.com"

	teamComposition = "Your project will be handled by a dedicated team including:\n" +
		"- Project Manager\n" +
		"- Senior Software Engineers\n" +
		"- UI/UX Designer\n" +
		"- QA Specialist\n" +
		"- DevOps Engineer (as needed)"

	pricingDisclaimer = "Final pricing will be determined based on detailed requirements, timeline, " +
		"and project complexity. We'll provide a detailed breakdown after our initial consultation call."

	nextSteps = "1. Review this proposal\n" +
		"2. Schedule a consultation call to discuss details\n" +
		"3. Receive detailed project plan and final quote\n" +
		"4. Project kickoff and development"

	legalDisclaimer = "IMPORTANT: This proposal is for orientational purposes only and does not " +
		"constitute a binding offer. Final terms, pricing, and deliverables will be confirmed in a " +
		"formal contract following detailed requirements analysis."
)

// Section headings in render order.
var Sections = []string{
	"Project Overview",
	"Recommended Services",
	"Team Composition",
	"Investment Estimate",
	"Next Steps",
}

// Request carries everything printed on a proposal. Fields are rendered as
// given; nothing is validated.
type Request struct {
	ClientName         string
	ClientEmail        string
	ProjectDescription string
	ServicesList       string
	ProjectScope       string
	Date               time.Time
}

// Builder renders proposals. The zero value is ready to use.
type Builder struct {
	// DisableCompression leaves page streams readable, for inspection.
	DisableCompression bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

type rgb struct{ r, g, b int }

var (
	brandBlue = rgb{0, 102, 204}
	grey      = rgb{100, 100, 100}
	black     = rgb{0, 0, 0}
)

// Build renders req as an A4 PDF.
func (b *Builder) Build(req Request) ([]byte, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!b.DisableCompression)
	pdf.SetCreationDate(date)
	pdf.SetModificationDate(date)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Notch Proposal - "+req.ClientName), false)
	pdf.SetAuthor(tr("Notch Team"), false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		setFont(pdf, "I", 8, grey)
		pdf.CellFormat(0, 4, tr(footerCompany), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, tr(footerWebsite), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// header
	setFont(pdf, "B", 24, brandBlue)
	pdf.CellFormat(0, 12, tr(brandName), "", 1, "C", false, 0, "")
	setFont(pdf, "I", 10, grey)
	pdf.CellFormat(0, 6, tr(brandTagline), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	setFont(pdf, "", 10, black)
	pdf.CellFormat(0, 6, tr("Date: "+date.Format("January 02, 2006")), "", 1, "R", false, 0, "")
	pdf.Ln(5)

	setFont(pdf, "B", 12, black)
	pdf.CellFormat(0, 7, tr("Proposal For:"), "", 1, "L", false, 0, "")
	setFont(pdf, "", 11, black)
	pdf.CellFormat(0, 6, tr(req.ClientName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(req.ClientEmail), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	bodies := []string{
		req.ProjectDescription,
		req.ServicesList,
		teamComposition,
		PriceRange(req.ProjectScope) + "\n\n" + pricingDisclaimer,
		nextSteps,
	}
	for i, heading := range Sections {
		section(pdf, tr, heading, bodies[i])
	}

	pdf.Ln(5)
	setFont(pdf, "I", 9, grey)
	pdf.MultiCell(0, 5, tr(legalDisclaimer), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render proposal pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, heading, body string) {
	setFont(pdf, "B", 14, brandBlue)
	pdf.CellFormat(0, 8, tr(heading), "", 1, "L", false, 0, "")
	setFont(pdf, "", 11, black)
	pdf.MultiCell(0, 6, tr(body), "", "", false)
	pdf.Ln(6)
}

func setFont(pdf *fpdf.Fpdf, style string, size float64, c rgb) {
	pdf.SetFont("Arial", style, size)
	pdf.SetTextColor(c.r, c.g, c.b)
}
