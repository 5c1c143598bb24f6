// Package keyword holds the reserved words known to the SQL dialects.
//
// Each word is an exported constant spelled in canonical upper case. A
// dialect reserves a subset of them through a Set.
package keyword

//nolint:revive // Keywords are intentionally ALL_CAPS
const (
	ADD        = "ADD"
	ALL        = "ALL"
	ALTER      = "ALTER"
	AND        = "AND"
	ANTI       = "ANTI"
	AS         = "AS"
	ASC        = "ASC"
	ASOF       = "ASOF"
	BETWEEN    = "BETWEEN"
	BIGINT     = "BIGINT"
	BINARY     = "BINARY"
	BLOB       = "BLOB"
	BOOLEAN    = "BOOLEAN"
	BY         = "BY"
	BYTEA      = "BYTEA"
	CAST       = "CAST"
	CHAR       = "CHAR"
	CHARACTER  = "CHARACTER"
	CLOB       = "CLOB"
	CONSTRAINT = "CONSTRAINT"
	COPY       = "COPY"
	CREATE     = "CREATE"
	CSV        = "CSV"
	DATE       = "DATE"
	DEC        = "DEC"
	DECIMAL    = "DECIMAL"
	DEFAULT    = "DEFAULT"
	DELETE     = "DELETE"
	DESC       = "DESC"
	DOUBLE     = "DOUBLE"
	DROP       = "DROP"
	EXTERNAL   = "EXTERNAL"
	FALSE      = "FALSE"
	FLOAT      = "FLOAT"
	FOREIGN    = "FOREIGN"
	FROM       = "FROM"
	GROUP      = "GROUP"
	HAVING     = "HAVING"
	HEADER     = "HEADER"
	ILIKE      = "ILIKE"
	IN         = "IN"
	INSERT     = "INSERT"
	INT        = "INT"
	INTEGER    = "INTEGER"
	INTO       = "INTO"
	IS         = "IS"
	KEY        = "KEY"
	LARGE      = "LARGE"
	LIKE       = "LIKE"
	LIMIT      = "LIMIT"
	LOCATION   = "LOCATION"
	NOT        = "NOT"
	NULL       = "NULL"
	NUMERIC    = "NUMERIC"
	OBJECT     = "OBJECT"
	ONLY       = "ONLY"
	OR         = "OR"
	ORDER      = "ORDER"
	PARQUET    = "PARQUET"
	PIVOT      = "PIVOT"
	POSITIONAL = "POSITIONAL"
	PRECISION  = "PRECISION"
	PRIMARY    = "PRIMARY"
	QUALIFY    = "QUALIFY"
	REAL       = "REAL"
	REFERENCES = "REFERENCES"
	REGCLASS   = "REGCLASS"
	ROW        = "ROW"
	SELECT     = "SELECT"
	SEMI       = "SEMI"
	SET        = "SET"
	SMALLINT   = "SMALLINT"
	STDIN      = "STDIN"
	STORED     = "STORED"
	TABLE      = "TABLE"
	TEXT       = "TEXT"
	TIME       = "TIME"
	TIMESTAMP  = "TIMESTAMP"
	TRUE       = "TRUE"
	UNION      = "UNION"
	UNIQUE     = "UNIQUE"
	UNPIVOT    = "UNPIVOT"
	UPDATE     = "UPDATE"
	UUID       = "UUID"
	VALUES     = "VALUES"
	VARBINARY  = "VARBINARY"
	VARCHAR    = "VARCHAR"
	VARYING    = "VARYING"
	WHERE      = "WHERE"
	WITH       = "WITH"
	WITHOUT    = "WITHOUT"
	ZONE       = "ZONE"
)

// Core is the vocabulary every dialect reserves: statement and clause
// words, the expression operators spelled as words, and SQL type names.
var Core = []string{
	SELECT, FROM, WHERE, LIMIT, ORDER, GROUP, BY, HAVING, UNION, ALL, INSERT,
	INTO, UPDATE, DELETE, IN, IS, NULL, SET, CREATE, EXTERNAL, TABLE, ASC,
	DESC, AND, OR, NOT, AS, STORED, CSV, WITH, WITHOUT, ROW, CAST, LIKE,
	BETWEEN,
	// SQL types
	CHAR, CHARACTER, VARYING, LARGE, VARCHAR, CLOB, BINARY, VARBINARY, BLOB,
	FLOAT, REAL, DOUBLE, PRECISION, INT, INTEGER, SMALLINT, BIGINT, NUMERIC,
	DECIMAL, DEC, BOOLEAN, DATE, TIME, TIMESTAMP,
}
