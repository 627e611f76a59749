package xlsx

import "encoding/xml"

// The structures below cover only the parts of SpreadsheetML the loader
// reads: the sheet list, cell values and the shared string table.

type xmlWorkbook struct {
	XMLName xml.Name `xml:"workbook"`
	Sheets  []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

type xmlWorksheet struct {
	XMLName xml.Name `xml:"worksheet"`
	Rows    []xmlRow `xml:"sheetData>row"`
}

type xmlRow struct {
	Num   int       `xml:"r,attr"`
	Cells []xmlCell `xml:"c"`
}

// xmlCell.Type is one of s (shared), b, e, str, inlineStr or empty for numbers.
type xmlCell struct {
	Ref    string `xml:"r,attr"`
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline *struct {
		Text string `xml:"t"`
	} `xml:"is"`
}

type xmlSharedStrings struct {
	XMLName xml.Name `xml:"sst"`
	Items   []struct {
		Text string `xml:"t"`
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type xmlRelationships struct {
	XMLName xml.Name `xml:"Relationships"`
	Rels    []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}
