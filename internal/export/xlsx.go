// Package export renders ledger state as an Excel workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"divvy/internal/calculator"
	"divvy/internal/models"
)

const (
	matrixSheet     = "Matrix"
	expensesSheet   = "Expenses"
	settlementSheet = "Settlement"
)

// BuildWorkbook assembles a workbook with three sheets:
//
//   - Matrix: per-person rows by per-expense columns of signed
//     contributions, plus a Net column. A cell holds the payer's credit
//     (+amount) minus the person's allocated share, so every expense
//     column sums to zero and the Net column equals the net balances.
//   - Expenses: the flat expense list.
//   - Settlement: the transfer list that zeroes all balances.
//
// Shares are recomputed through the same allocator the ledger uses, so
// the workbook can never disagree with the balance vector.
func BuildWorkbook(people []models.Person, expenses []models.Expense, transfers []models.Transfer) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeMatrix(f, people, expenses); err != nil {
		return nil, err
	}
	if err := writeExpenses(f, expenses); err != nil {
		return nil, err
	}
	if err := writeSettlement(f, transfers); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(matrixSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeMatrix(f *excelize.File, people []models.Person, expenses []models.Expense) error {
	if _, err := f.NewSheet(matrixSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"Person"}
	for _, e := range expenses {
		headers = append(headers, e.Description)
	}
	headers = append(headers, "Net")
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(matrixSheet, cell, h); err != nil {
			return err
		}
	}

	// Signed contribution per cell: credit for the payer, minus the
	// allocated share for each participant.
	contributions := make([]map[string]int64, len(expenses))
	for i, e := range expenses {
		cells := make(map[string]int64)
		cells[models.Key(e.Payer)] += e.Amount.Cents
		for name, share := range calculator.Allocate(e.Amount, e.Participants) {
			cells[models.Key(name)] -= share.Cents
		}
		contributions[i] = cells
	}

	for row, p := range people {
		key := models.Key(p.Name)
		if err := setCell(f, matrixSheet, 1, row+2, p.Name); err != nil {
			return err
		}
		var net int64
		for col, cells := range contributions {
			cents := cells[key]
			net += cents
			if err := setCell(f, matrixSheet, col+2, row+2, models.FromCents(cents).Decimal().InexactFloat64()); err != nil {
				return err
			}
		}
		if err := setCell(f, matrixSheet, len(expenses)+2, row+2, models.FromCents(net).Decimal().InexactFloat64()); err != nil {
			return err
		}
	}

	return f.SetColWidth(matrixSheet, "A", "A", 18)
}

func writeExpenses(f *excelize.File, expenses []models.Expense) error {
	if _, err := f.NewSheet(expensesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for i, h := range []string{"Description", "Amount", "Payer", "Participants"} {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(expensesSheet, cell, h); err != nil {
			return err
		}
	}
	for i, e := range expenses {
		row := i + 2
		if err := f.SetCellValue(expensesSheet, fmt.Sprintf("A%d", row), e.Description); err != nil {
			return err
		}
		if err := f.SetCellValue(expensesSheet, fmt.Sprintf("B%d", row), e.Amount.Decimal().InexactFloat64()); err != nil {
			return err
		}
		if err := f.SetCellValue(expensesSheet, fmt.Sprintf("C%d", row), e.Payer); err != nil {
			return err
		}
		if err := f.SetCellValue(expensesSheet, fmt.Sprintf("D%d", row), strings.Join(e.Participants, ", ")); err != nil {
			return err
		}
	}

	f.SetColWidth(expensesSheet, "A", "A", 30)
	return f.SetColWidth(expensesSheet, "D", "D", 40)
}

func writeSettlement(f *excelize.File, transfers []models.Transfer) error {
	if _, err := f.NewSheet(settlementSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for i, h := range []string{"From", "To", "Amount"} {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(settlementSheet, cell, h); err != nil {
			return err
		}
	}
	for i, t := range transfers {
		row := i + 2
		if err := f.SetCellValue(settlementSheet, fmt.Sprintf("A%d", row), t.From); err != nil {
			return err
		}
		if err := f.SetCellValue(settlementSheet, fmt.Sprintf("B%d", row), t.To); err != nil {
			return err
		}
		if err := f.SetCellValue(settlementSheet, fmt.Sprintf("C%d", row), t.Amount.Decimal().InexactFloat64()); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
