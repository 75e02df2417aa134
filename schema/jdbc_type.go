package schema

import (
	"fmt"
	"strings"
)

// JdbcType is the SQL type code a result column is read as. The zero value is
// Undefined, meaning the type handler decides.
type JdbcType int

const (
	Undefined JdbcType = iota
	Array
	Bit
	TinyInt
	SmallInt
	Integer
	BigInt
	Float
	Real
	Double
	Numeric
	Decimal
	Char
	VarChar
	LongVarChar
	Date
	Time
	Timestamp
	Binary
	VarBinary
	LongVarBinary
	Null
	Other
	Blob
	Clob
	Boolean
	Cursor
	NVarChar
	NChar
	NClob
	Struct
	JavaObject
	Distinct
	Ref
	DataLink
	RowID
	LongNVarChar
	SQLXML
	DateTimeOffset
	TimeWithTimezone
	TimestampWithTimezone
)

var jdbcTypeNames = [...]string{
	Undefined:             "UNDEFINED",
	Array:                 "ARRAY",
	Bit:                   "BIT",
	TinyInt:               "TINYINT",
	SmallInt:              "SMALLINT",
	Integer:               "INTEGER",
	BigInt:                "BIGINT",
	Float:                 "FLOAT",
	Real:                  "REAL",
	Double:                "DOUBLE",
	Numeric:               "NUMERIC",
	Decimal:               "DECIMAL",
	Char:                  "CHAR",
	VarChar:               "VARCHAR",
	LongVarChar:           "LONGVARCHAR",
	Date:                  "DATE",
	Time:                  "TIME",
	Timestamp:             "TIMESTAMP",
	Binary:                "BINARY",
	VarBinary:             "VARBINARY",
	LongVarBinary:         "LONGVARBINARY",
	Null:                  "NULL",
	Other:                 "OTHER",
	Blob:                  "BLOB",
	Clob:                  "CLOB",
	Boolean:               "BOOLEAN",
	Cursor:                "CURSOR",
	NVarChar:              "NVARCHAR",
	NChar:                 "NCHAR",
	NClob:                 "NCLOB",
	Struct:                "STRUCT",
	JavaObject:            "JAVA_OBJECT",
	Distinct:              "DISTINCT",
	Ref:                   "REF",
	DataLink:              "DATALINK",
	RowID:                 "ROWID",
	LongNVarChar:          "LONGNVARCHAR",
	SQLXML:                "SQLXML",
	DateTimeOffset:        "DATETIMEOFFSET",
	TimeWithTimezone:      "TIME_WITH_TIMEZONE",
	TimestampWithTimezone: "TIMESTAMP_WITH_TIMEZONE",
}

func (t JdbcType) String() string {
	if t < 0 || int(t) >= len(jdbcTypeNames) {
		return fmt.Sprintf("JdbcType(%d)", int(t))
	}
	return jdbcTypeNames[t]
}

// ParseJdbcType parses a jdbc type name case-insensitively, an empty name is Undefined
func ParseJdbcType(name string) (JdbcType, error) {
	if name == "" {
		return Undefined, nil
	}
	for i, n := range jdbcTypeNames {
		if strings.EqualFold(n, name) {
			return JdbcType(i), nil
		}
	}
	return Undefined, fmt.Errorf("unknown jdbc type %q", name)
}
