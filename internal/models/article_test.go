package models

import (
	"reflect"
	"testing"
)

func TestStringListValueAndScan(t *testing.T) {
	v, err := StringList{"go", "gorm"}.Value()
	if err != nil {
		t.Fatalf("Value に失敗しました: %v", err)
	}
	if v != "go,gorm" {
		t.Errorf("予期しない値: %v", v)
	}

	var l StringList
	if err := l.Scan([]byte("a,b,c")); err != nil {
		t.Fatalf("Scan に失敗しました: %v", err)
	}
	if !reflect.DeepEqual(l, StringList{"a", "b", "c"}) {
		t.Errorf("予期しないリスト: %v", l)
	}

	if err := l.Scan(""); err != nil {
		t.Fatalf("Scan に失敗しました: %v", err)
	}
	if l == nil || len(l) != 0 {
		t.Errorf("空文字は空リストになるべきです: %#v", l)
	}

	if err := l.Scan(42); err == nil {
		t.Error("数値の Scan はエラーになるべきです")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" go ", "", "go", "a,b", "web"})
	want := StringList{"go", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Errorf("nil は空リストになるべきです: %#v", got)
	}
}
