package config

import "time"

// File is a YAML declaration file
type File struct {
	Settings   Settings    `yaml:"settings"`
	Namespaces []Namespace `yaml:"namespaces"`
	ResultMaps []ResultMap `yaml:"resultMaps"`
}

// Settings load settings, zero values keep the defaults
type Settings struct {
	CacheSize int           `yaml:"cacheSize"`
	CacheTTL  time.Duration `yaml:"cacheTTL"`
	LogLevel  string        `yaml:"logLevel"`
}

// Namespace declares a cache namespace. Ref names another namespace, RefType
// is the type alias of a mapper whose namespace is used. Neither means the
// namespace owns its cache.
type Namespace struct {
	Namespace string `yaml:"namespace"`
	Ref       string `yaml:"ref,omitempty"`
	RefType   string `yaml:"refType,omitempty"`
}

// ResultMap lists the constructor args of the model registered as Type
type ResultMap struct {
	Type string `yaml:"type"`
	Args []Arg  `yaml:"args"`
}

// Arg one constructor argument, the position in its list is its index
type Arg struct {
	ID           bool   `yaml:"id,omitempty"`
	Column       string `yaml:"column,omitempty"`
	JavaType     string `yaml:"javaType,omitempty"`
	JdbcType     string `yaml:"jdbcType,omitempty"`
	TypeHandler  string `yaml:"typeHandler,omitempty"`
	Select       string `yaml:"select,omitempty"`
	ResultMap    string `yaml:"resultMap,omitempty"`
	Name         string `yaml:"name,omitempty"`
	ColumnPrefix string `yaml:"columnPrefix,omitempty"`
}
