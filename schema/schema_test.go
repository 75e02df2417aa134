package schema

import (
	"errors"
	"reflect"
)

type Author struct {
	ID    int
	Name  string
	Email string
	Posts []BlogPost
	rank  int
}

type BlogPost struct {
	ID     int64
	Title  string
	Author *Author
}

func NewAuthor(id int, name string) *Author {
	return &Author{ID: id, Name: name}
}

func NewAuthorWithEmail(id int, name, email string) *Author {
	return &Author{ID: id, Name: name, Email: email}
}

func NewAuthorWithPosts(id int, posts []BlogPost) (Author, error) {
	if id <= 0 {
		return Author{}, errors.New("invalid id")
	}
	return Author{ID: id, Posts: posts}, nil
}

var (
	intType    = reflect.TypeOf(0)
	int64Type  = reflect.TypeOf(int64(0))
	stringType = reflect.TypeOf("")
)
