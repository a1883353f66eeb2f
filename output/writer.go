package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	separator = ";"
)

// WriteCSV 以;分隔写出表格，第一行为表头
// 说明：单元格不加引号，字段内不应包含分隔符
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(t.Header, separator) + "\n"); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := bw.WriteString(strings.Join(row, separator) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteXLSX 将多张表写入同一个工作簿，每张表一个工作表
func WriteXLSX(path string, tables ...Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	for i, t := range tables {
		sheet := sheetName(t.Name)
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		if err := f.SetSheetRow(sheet, "A1", &t.Header); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		for r, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("sheet %s: %w", sheet, err)
			}
		}
	}
	if len(tables) > 0 {
		// 默认工作表
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// sheetName 工作表名最长31个字符
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

// Writer 结果写出器
// 功能：按配置的格式把结果表写入输出目录
// 说明：csv格式每张表一个文件<prefix>.<name>.csv，xlsx格式所有表写入<prefix>.xlsx
type Writer struct {
	Dir    string
	Prefix string
	Format string
}

func (w Writer) fileName(name string) string {
	if w.Prefix == "" {
		return name
	}
	return w.Prefix + "." + name
}

// Write 写出结果表
// 返回：写出的文件路径
func (w Writer) Write(tables ...Table) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, err
	}
	switch w.Format {
	case FormatXLSX:
		name := w.Prefix
		if name == "" {
			name = "results"
		}
		path := filepath.Join(w.Dir, name+".xlsx")
		if err := WriteXLSX(path, tables...); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		log.Infof("%d tables written to %s", len(tables), path)
		return []string{path}, nil
	case FormatCSV, "":
		paths := make([]string, 0, len(tables))
		for _, t := range tables {
			path := filepath.Join(w.Dir, w.fileName(t.Name)+".csv")
			if err := writeCSVFile(path, t); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			log.Infof("%d rows written to %s", len(t.Rows), path)
			paths = append(paths, path)
		}
		return paths, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", w.Format)
	}
}

func writeCSVFile(path string, t Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, t)
}
