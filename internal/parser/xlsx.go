package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

func (xlsxParser) Parse(content []byte, opt Options) (*Table, error) {
	return ParseXLSX(content, opt.Sheet)
}

// ParseXLSX reads one worksheet of a workbook and maps it like delimited text.
// If sheet is empty the first sheet is used. Exported tables from a workbook
// use a comma delimiter.
func ParseXLSX(content []byte, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}
	target := sheets[0]
	if sheet != "" {
		target = ""
		for _, s := range sheets {
			if strings.EqualFold(s, sheet) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook.\nAvailable sheets: %s", sheet, strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	var records [][]string
	for _, r := range rows {
		if blankRecord(r) || len(r) == 0 {
			continue
		}
		records = append(records, r)
	}
	if len(records) < 2 {
		return nil, ErrEmptyInput
	}
	t, err := FromRecords(records[0], records[1:], ',')
	if err != nil {
		return nil, err
	}
	t.Format = "xlsx"
	return t, nil
}
