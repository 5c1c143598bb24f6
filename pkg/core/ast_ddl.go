package core

import "github.com/leapstack-labs/sqlfront/pkg/token"

// ---------- DDL Statements ----------

// CreateTableStmt is CREATE TABLE name (column definitions).
type CreateTableStmt struct {
	Name    *CompoundIdentifier
	Columns []*ColumnDef
	Start   token.Position
}

func (*CreateTableStmt) stmtNode() {}

// Pos implements Node.
func (s *CreateTableStmt) Pos() token.Position { return s.Start }

// ColumnDef is one column of CREATE TABLE.
// AllowNull is false only when NOT NULL was given.
type ColumnDef struct {
	Name      *Identifier
	Type      *DataType
	IsPrimary bool
	IsUnique  bool
	Default   Expr
	AllowNull bool
}

// Pos implements Node.
func (c *ColumnDef) Pos() token.Position { return c.Name.Pos() }

// AlterTableStmt is ALTER TABLE [ONLY] name operation.
type AlterTableStmt struct {
	Name      *CompoundIdentifier
	Only      bool
	Operation AlterOperation
	Start     token.Position
}

func (*AlterTableStmt) stmtNode() {}

// Pos implements Node.
func (s *AlterTableStmt) Pos() token.Position { return s.Start }

// AlterOperation is the action of ALTER TABLE: *AddConstraint or
// *DropConstraint.
type AlterOperation interface {
	Node
	alterOp()
}

// AddConstraint is ADD CONSTRAINT <table key>.
type AddConstraint struct {
	Key *TableKey
}

func (*AddConstraint) alterOp() {}

// Pos implements Node.
func (a *AddConstraint) Pos() token.Position { return a.Key.Pos() }

// DropConstraint is DROP CONSTRAINT name.
type DropConstraint struct {
	Name *Identifier
}

func (*DropConstraint) alterOp() {}

// Pos implements Node.
func (d *DropConstraint) Pos() token.Position { return d.Name.Pos() }

// TableKeyKind distinguishes the table constraint forms.
type TableKeyKind int

// TableKeyKind constants.
const (
	PrimaryKey TableKeyKind = iota
	UniqueKey
	Key
	ForeignKey
)

// String returns the SQL spelling of the key kind.
func (k TableKeyKind) String() string {
	switch k {
	case PrimaryKey:
		return "PRIMARY KEY"
	case UniqueKey:
		return "UNIQUE KEY"
	case Key:
		return "KEY"
	case ForeignKey:
		return "FOREIGN KEY"
	default:
		return "UNKNOWN KEY"
	}
}

// TableKey is a named table constraint. ForeignTable and ReferredColumns
// are set only for ForeignKey.
type TableKey struct {
	Kind            TableKeyKind
	Name            *Identifier
	Columns         []*Identifier
	ForeignTable    *CompoundIdentifier
	ReferredColumns []*Identifier
}

// Pos implements Node.
func (k *TableKey) Pos() token.Position { return k.Name.Pos() }

// ---------- Data Types ----------

// DataTypeKind enumerates the column and cast types the parser knows.
type DataTypeKind int

// DataTypeKind constants.
const (
	TypeCustom DataTypeKind = iota
	TypeChar
	TypeVarchar
	TypeUUID
	TypeClob
	TypeBinary
	TypeVarbinary
	TypeBlob
	TypeDecimal
	TypeSmallInt
	TypeInt
	TypeBigInt
	TypeFloat
	TypeReal
	TypeDouble
	TypeBoolean
	TypeDate
	TypeTime
	TypeTimestamp
	TypeRegclass
	TypeText
	TypeBytea
	TypeArray
)

// DataType is a SQL data type.
//
// Length applies to character and binary types, Precision and Scale to
// DECIMAL and FLOAT. A nil pointer means the modifier was omitted.
type DataType struct {
	Kind         DataTypeKind
	Length       *int
	Precision    *int
	Scale        *int
	WithTimeZone bool
	Custom       *CompoundIdentifier // TypeCustom
	Elem         *DataType           // TypeArray
}

// Pos implements Node.
func (d *DataType) Pos() token.Position {
	if d.Custom != nil {
		return d.Custom.Pos()
	}
	return token.Position{}
}

// IntPtr returns a pointer to n, for building DataType modifiers.
func IntPtr(n int) *int { return &n }
