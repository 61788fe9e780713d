package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tedit/datatable"
	"tedit/store"
)

func TestNewDefaults(t *testing.T) {
	s := store.New("", "")
	assert.Equal(t, "data", s.DataDir())
	assert.Equal(t, 0, s.RowCount())
	assert.Equal(t, 0, s.ColumnCount())
}

func TestAddRow(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Name,Age", "1,Allen,29")

	s.AddRow(rawRow("PassengerId", "2", "Age", "4"))
	as.Equal(2, s.RowCount())
	as.True(cell(t, s, 1, "Age").Equal(datatable.NewInt(4)))
	as.True(cell(t, s, 1, "Name").IsNull())
}

func TestAddRowGrowsHeader(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Name", "1,Allen")

	s.AddRow(rawRow("PassengerId", "2", "Boat", "13"))
	as.Equal([]string{"PassengerId", "Name", "Boat"}, s.Columns())
	as.True(cell(t, s, 0, "Boat").IsNull())
	as.True(cell(t, s, 1, "Boat").Equal(datatable.NewInt(13)))
}

func TestAddRowToEmptyStore(t *testing.T) {
	s := newStore(t)
	s.AddRow(rawRow("PassengerId", "1", "Sex", "male"))

	assert.Equal(t, []string{"PassengerId", "Sex"}, s.Columns())
	assert.Equal(t, 1, s.RowCount())
}

func TestUpdateRow(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Name,Age", "1,Allen,29", "2,Bonnell,58")

	require.NoError(t, s.UpdateRow(1, rawRow("Age", "59")))
	as.True(cell(t, s, 1, "Age").Equal(datatable.NewInt(59)))
	as.True(cell(t, s, 1, "Name").Equal(datatable.NewText("Bonnell")))
	as.True(cell(t, s, 0, "Age").Equal(datatable.NewInt(29)))
}

func TestUpdateRowOutOfRange(t *testing.T) {
	s := loadCSV(t, "PassengerId,Age", "1,29")

	for _, i := range []int{-1, 1, 100} {
		err := s.UpdateRow(i, rawRow("Age", "30"))
		assert.ErrorIs(t, err, datatable.ErrInvalidRow)
	}
	// A failed update does not grow the header.
	assert.Error(t, s.UpdateRow(5, rawRow("Boat", "1")))
	assert.False(t, s.HasColumn("Boat"))
}

func TestDeleteRow(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId", "1", "2", "3")

	require.NoError(t, s.DeleteRow(0))
	as.Equal(2, s.RowCount())
	as.True(cell(t, s, 0, "PassengerId").Equal(datatable.NewInt(2)))

	as.ErrorIs(s.DeleteRow(2), datatable.ErrInvalidRow)
	as.ErrorIs(s.DeleteRow(-1), datatable.ErrInvalidRow)
}

func TestDeleteThenUpdateHitsNextRow(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Age", "1,10", "2,20", "3,30")

	require.NoError(t, s.DeleteRow(1))
	require.NoError(t, s.UpdateRow(1, rawRow("Age", "99")))

	as.True(cell(t, s, 1, "PassengerId").Equal(datatable.NewInt(3)))
	as.True(cell(t, s, 1, "Age").Equal(datatable.NewInt(99)))
	as.True(cell(t, s, 0, "Age").Equal(datatable.NewInt(10)))
}

func TestDataSource(t *testing.T) {
	as := assert.New(t)
	s := loadCSV(t, "PassengerId,Name,Age,Cabin", "1,Allen,29,", "2,Bonnell,58.5,")

	var source datatable.DataSource = s
	as.Equal(2, source.RowCount())
	as.Equal(4, source.ColumnCount())

	name, err := source.ColumnName(1)
	as.NoError(err)
	as.Equal("Name", name)
	_, err = source.ColumnName(4)
	as.ErrorIs(err, datatable.ErrInvalidColumn)

	types := map[string]datatable.DataType{
		"PassengerId": datatable.TypeInt,
		"Name":        datatable.TypeString,
		"Age":         datatable.TypeFloat,
		"Cabin":       datatable.TypeFloat,
	}
	for col := 0; col < source.ColumnCount(); col++ {
		name, _ := source.ColumnName(col)
		typ, err := source.ColumnType(col)
		as.NoError(err)
		as.Equalf(types[name], typ, "column %s", name)
	}

	v, err := source.Cell(1, 2)
	as.NoError(err)
	as.Equal("58.5", v.String())
	_, err = source.Cell(2, 0)
	as.ErrorIs(err, datatable.ErrInvalidRow)
	_, err = source.Cell(0, -1)
	as.ErrorIs(err, datatable.ErrInvalidColumn)

	row, err := source.Row(0)
	as.NoError(err)
	as.Equal([]string{"PassengerId", "Name", "Age", "Cabin"}, row.Columns())

	as.Contains(source.Metadata(), "source")
}

func TestColumnsIsACopy(t *testing.T) {
	s := loadCSV(t, "PassengerId,Name", "1,Allen")
	cols := s.Columns()
	cols[0] = "changed"
	assert.Equal(t, "PassengerId", s.Columns()[0])
}
