package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct Postgres SQL statements with "?" placeholders rewritten to $n.
type SQLBuilder struct {
	table      string
	columns    []string
	values     []interface{}
	updateCols []string
	updateArgs []interface{}
	where      []string
	whereArgs  []interface{}
	orderBy    []string
	limit      int
	offset     int
	forUpdate  bool
	conflict   *onConflict
	isInsert   bool
	isUpdate   bool
	isDelete   bool
	isSelect   bool
}

// onConflict describes an INSERT ... ON CONFLICT clause.
type onConflict struct {
	target    []string
	updateSet []string
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.isUpdate = true
	b.table = table
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set adds a column assignment to an UPDATE.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.updateCols = append(b.updateCols, col)
	b.updateArgs = append(b.updateArgs, val)
	return b
}

// Values specifies the values for insertion.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// Where adds a condition; multiple conditions are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds an OFFSET clause.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// ForUpdate appends FOR UPDATE to a SELECT.
func (b *SQLBuilder) ForUpdate() *SQLBuilder {
	b.forUpdate = true
	return b
}

// OnConflict turns an INSERT into an upsert. Each column in updateCols is set from EXCLUDED.
// With no updateCols the conflict is ignored.
func (b *SQLBuilder) OnConflict(target []string, updateCols ...string) *SQLBuilder {
	b.conflict = &onConflict{target: target, updateSet: updateCols}
	return b
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	argIndex := 1

	switch {
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			argIndex++
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		args = append(args, b.values...)
		if b.conflict != nil {
			sb.WriteString(" ON CONFLICT (")
			sb.WriteString(strings.Join(b.conflict.target, ", "))
			sb.WriteString(")")
			if len(b.conflict.updateSet) == 0 {
				sb.WriteString(" DO NOTHING")
			} else {
				sets := make([]string, len(b.conflict.updateSet))
				for i, col := range b.conflict.updateSet {
					sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
				}
				sb.WriteString(" DO UPDATE SET ")
				sb.WriteString(strings.Join(sets, ", "))
			}
		}
	case b.isUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.updateCols))
		for i, col := range b.updateCols {
			setClauses[i] = fmt.Sprintf("%s = $%d", col, argIndex)
			argIndex++
		}
		sb.WriteString(strings.Join(setClauses, ", "))
		args = append(args, b.updateArgs...)
	case b.isDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 && !b.isInsert {
		sb.WriteString(" WHERE ")
		sb.WriteString(numberPlaceholders(strings.Join(b.where, " AND "), &argIndex))
		args = append(args, b.whereArgs...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}

	if b.offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
	}

	if b.forUpdate && b.isSelect {
		sb.WriteString(" FOR UPDATE")
	}

	return sb.String(), args
}

// numberPlaceholders replaces each "?" with the next $n.
func numberPlaceholders(clause string, next *int) string {
	var sb strings.Builder
	parts := strings.Split(clause, "?")
	for i, part := range parts {
		sb.WriteString(part)
		if i < len(parts)-1 {
			sb.WriteString(fmt.Sprintf("$%d", *next))
			*next++
		}
	}
	return sb.String()
}
