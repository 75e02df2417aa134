package schema

import (
	"reflect"
	"testing"
)

type AuthorMapper interface{}

func TestToAliasName(t *testing.T) {
	var maps = map[string]string{
		"":                          "",
		"x":                         "x",
		"X":                         "x",
		"userRestrictions":          "user_restrictions",
		"ThisIsATest":               "this_is_a_test",
		"PFAndESI":                  "pf_and_esi",
		"AbcAndJkl":                 "abc_and_jkl",
		"EmployeeID":                "employee_id",
		"SKU_ID":                    "sku_id",
		"FieldX":                    "field_x",
		"HTTPAndSMTP":               "http_and_smtp",
		"HTTPServerHandlerForURLID": "http_server_handler_for_url_id",
		"UUID":                      "uuid",
		"HTTPURL":                   "http_url",
		"HTTP_URL":                  "http_url",
		"SHA256Hash":                "sha256_hash",
		"SHA256HASH":                "sha256_hash",
	}

	for key, value := range maps {
		if toAliasName(key) != value {
			t.Errorf("%v toAliasName should equal %v, but got %v", key, value, toAliasName(key))
		}
	}
}

func TestNamingStrategy(t *testing.T) {
	ns := NamingStrategy{}

	mapper := reflect.TypeOf((*AuthorMapper)(nil)).Elem()
	if got := ns.NamespaceName(mapper); got != "gorm.io/resultmap/schema.AuthorMapper" {
		t.Errorf("unexpected namespace name %q", got)
	}
	if got := ns.NamespaceName(reflect.TypeOf(&Author{})); got != "gorm.io/resultmap/schema.Author" {
		t.Errorf("pointers should be ignored, got %q", got)
	}

	prefixed := NamingStrategy{NamespacePrefix: "blog:"}
	if got := prefixed.NamespaceName(mapper); got != "blog:gorm.io/resultmap/schema.AuthorMapper" {
		t.Errorf("unexpected prefixed namespace name %q", got)
	}

	aliases := map[reflect.Type]string{
		reflect.TypeOf(Author{}):      "author",
		reflect.TypeOf(&BlogPost{}):   "blog_post",
		reflect.TypeOf([]Author{}):    "authors",
		reflect.TypeOf([]*BlogPost{}): "blog_posts",
		reflect.TypeOf(0):             "int",
	}
	for typ, alias := range aliases {
		if got := ns.TypeAlias(typ); got != alias {
			t.Errorf("%v alias should be %q, got %q", typ, alias, got)
		}
	}

	if got := (NamingStrategy{NoPluralAlias: true}).TypeAlias(reflect.TypeOf([]Author{})); got != "author_list" {
		t.Errorf("expected author_list, got %q", got)
	}
}
