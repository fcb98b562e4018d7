// Folio: A streamlined CLI tool for searching and downloading web novels.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package artifact

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"Folio/pkg/core"
	"Folio/pkg/engine/parser"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	epubMimetype  = "application/epub+zip"
	xhtmlMedia    = "application/xhtml+xml"
	contentDir    = "OEBPS/"
	introFile     = "intro.xhtml"
	navFile       = "nav.xhtml"
	ncxFile       = "toc.ncx"
	packageFile   = "content.opf"
	introTitle    = "Book information"
	contentsTitle = "Contents"
)

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

// EPUBBuilder writes an EPUB 3 book with one XHTML document per chapter
type EPUBBuilder struct {
	language string
	now      func() time.Time
}

// NewEPUBBuilder creates an EPUBBuilder declaring language in its metadata.
func NewEPUBBuilder(language string) *EPUBBuilder {
	if language == "" {
		language = "zh-CN"
	}
	return &EPUBBuilder{language: language, now: time.Now}
}

func (b *EPUBBuilder) Format() core.Format { return core.FormatEPUB }

// Build writes the EPUB container for book into dir.
func (b *EPUBBuilder) Build(book *core.Book, chapters []core.Chapter, dir string) (string, error) {
	path := outputPath(book, core.FormatEPUB, dir)

	err := writeAtomic(path, func(w io.Writer) error {
		return b.write(w, book, chapters)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

type epubDocument struct {
	id    string
	file  string
	title string
}

func chapterFile(n int) string {
	return fmt.Sprintf("chapter_%d.xhtml", n)
}

func (b *EPUBBuilder) write(w io.Writer, book *core.Book, chapters []core.Chapter) error {
	zw := zip.NewWriter(w)

	// The mimetype entry must come first and be stored uncompressed.
	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := io.WriteString(mt, epubMimetype); err != nil {
		return err
	}

	if err := writeEntry(zw, "META-INF/container.xml", func(w io.Writer) error {
		_, err := io.WriteString(w, containerXML)
		return err
	}); err != nil {
		return err
	}

	docs := []epubDocument{{id: "intro", file: introFile, title: introTitle}}
	for i, ch := range chapters {
		docs = append(docs, epubDocument{id: fmt.Sprintf("chapter_%d", i+1), file: chapterFile(i + 1), title: ch.Title})
	}

	if err := writeEntry(zw, contentDir+introFile, func(w io.Writer) error {
		return renderXHTML(w, b.language, introTitle, introBody(book))
	}); err != nil {
		return err
	}

	for i, ch := range chapters {
		if err := writeEntry(zw, contentDir+chapterFile(i+1), func(w io.Writer) error {
			return renderXHTML(w, b.language, ch.Title, chapterBody(ch))
		}); err != nil {
			return err
		}
	}

	if err := writeEntry(zw, contentDir+navFile, func(w io.Writer) error {
		return renderXHTML(w, b.language, contentsTitle, navBody(docs))
	}); err != nil {
		return err
	}

	identifier := bookIdentifier(book)
	if err := writeEntry(zw, contentDir+ncxFile, func(w io.Writer) error {
		return writeXML(w, buildNCX(book, identifier, docs))
	}); err != nil {
		return err
	}

	if err := writeEntry(zw, contentDir+packageFile, func(w io.Writer) error {
		return writeXML(w, b.buildPackage(book, identifier, docs))
	}); err != nil {
		return err
	}

	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, write func(io.Writer) error) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	return write(w)
}

// bookIdentifier derives a stable identifier from the provider book ID.
func bookIdentifier(book *core.Book) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("folio:"+book.ID)).String()
}

func writeXML(w io.Writer, v interface{}) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// XHTML documents

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func renderXHTML(w io.Writer, language, title string, body []*html.Node) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html,
		html.Attribute{Key: "xmlns", Val: "http://www.w3.org/1999/xhtml"},
		html.Attribute{Key: "xmlns:epub", Val: "http://www.idpf.org/2007/ops"},
		html.Attribute{Key: "lang", Val: language},
		html.Attribute{Key: "xml:lang", Val: language},
	)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(textElement(atom.Title, title))
	root.AppendChild(head)

	bodyNode := element(atom.Body)
	for _, n := range body {
		bodyNode.AppendChild(n)
	}
	root.AppendChild(bodyNode)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return html.Render(w, doc)
}

func introBody(book *core.Book) []*html.Node {
	author := element(atom.P)
	author.AppendChild(textElement(atom.Strong, "Author: "))
	author.AppendChild(&html.Node{Type: html.TextNode, Data: book.Author})

	nodes := []*html.Node{textElement(atom.H1, book.Title), author, element(atom.Hr)}
	if book.Description != "" {
		nodes = append(nodes, textElement(atom.H3, "Description"))
		for _, line := range strings.Split(book.Description, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				nodes = append(nodes, textElement(atom.P, line))
			}
		}
	}
	return nodes
}

func chapterBody(ch core.Chapter) []*html.Node {
	div := element(atom.Div)
	for _, p := range parser.Paragraphs(ch.Text) {
		div.AppendChild(textElement(atom.P, p))
	}
	return []*html.Node{textElement(atom.H1, ch.Title), div}
}

func navBody(docs []epubDocument) []*html.Node {
	nav := element(atom.Nav, html.Attribute{Key: "epub:type", Val: "toc"}, html.Attribute{Key: "id", Val: "toc"})
	nav.AppendChild(textElement(atom.H1, contentsTitle))

	list := element(atom.Ol)
	for _, d := range docs {
		link := textElement(atom.A, d.title)
		link.Attr = []html.Attribute{{Key: "href", Val: d.file}}
		item := element(atom.Li)
		item.AppendChild(link)
		list.AppendChild(item)
	}
	nav.AppendChild(list)
	return []*html.Node{nav}
}

// Package document

type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Xmlns    string      `xml:"xmlns,attr"`
	Version  string      `xml:"version,attr"`
	UniqueID string      `xml:"unique-identifier,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest []opfItem   `xml:"manifest>item"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	XmlnsDC     string        `xml:"xmlns:dc,attr"`
	Identifier  opfIdentifier `xml:"dc:identifier"`
	Title       string        `xml:"dc:title"`
	Creator     string        `xml:"dc:creator"`
	Language    string        `xml:"dc:language"`
	Description string        `xml:"dc:description,omitempty"`
	Meta        []opfMeta     `xml:"meta"`
}

type opfIdentifier struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type opfMeta struct {
	Property string `xml:"property,attr"`
	Value    string `xml:",chardata"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr,omitempty"`
}

type opfSpine struct {
	Toc   string       `xml:"toc,attr"`
	Items []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

func (b *EPUBBuilder) buildPackage(book *core.Book, identifier string, docs []epubDocument) opfPackage {
	pkg := opfPackage{
		Xmlns:    "http://www.idpf.org/2007/opf",
		Version:  "3.0",
		UniqueID: "book-id",
		Metadata: opfMetadata{
			XmlnsDC:     "http://purl.org/dc/elements/1.1/",
			Identifier:  opfIdentifier{ID: "book-id", Value: identifier},
			Title:       book.Title,
			Creator:     book.Author,
			Language:    b.language,
			Description: book.Description,
			Meta: []opfMeta{
				{Property: "dcterms:modified", Value: b.now().UTC().Format("2006-01-02T15:04:05Z")},
			},
		},
		Manifest: []opfItem{
			{ID: "nav", Href: navFile, MediaType: xhtmlMedia, Properties: "nav"},
			{ID: "ncx", Href: ncxFile, MediaType: "application/x-dtbncx+xml"},
		},
		Spine: opfSpine{Toc: "ncx"},
	}

	for _, d := range docs {
		pkg.Manifest = append(pkg.Manifest, opfItem{ID: d.id, Href: d.file, MediaType: xhtmlMedia})
		pkg.Spine.Items = append(pkg.Spine.Items, opfItemRef{IDRef: d.id})
	}
	return pkg
}

// NCX table of contents for EPUB 2 readers

type ncxDocument struct {
	XMLName   xml.Name      `xml:"ncx"`
	Xmlns     string        `xml:"xmlns,attr"`
	Version   string        `xml:"version,attr"`
	Head      []ncxMeta     `xml:"head>meta"`
	Title     string        `xml:"docTitle>text"`
	NavPoints []ncxNavPoint `xml:"navMap>navPoint"`
}

type ncxMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type ncxNavPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     string     `xml:"navLabel>text"`
	Content   ncxContent `xml:"content"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

func buildNCX(book *core.Book, identifier string, docs []epubDocument) ncxDocument {
	doc := ncxDocument{
		Xmlns:   "http://www.daisy.org/z3986/2005/ncx/",
		Version: "2005-1",
		Head:    []ncxMeta{{Name: "dtb:uid", Content: identifier}},
		Title:   book.Title,
	}
	for i, d := range docs {
		doc.NavPoints = append(doc.NavPoints, ncxNavPoint{
			ID:        "nav-" + d.id,
			PlayOrder: i + 1,
			Label:     d.title,
			Content:   ncxContent{Src: d.file},
		})
	}
	return doc
}
