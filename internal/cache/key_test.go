package cache

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"featured-packages", nil, "featured-packages"},
		{"package-by-slug", []any{"cancun"}, `package-by-slug::"cancun"`},
		{"related-packages", []any{"cancun-7", "cancun", 3}, `related-packages::"cancun-7"::"cancun"::3`},
		{"ids", []any{[]string{"a", "b"}}, `ids::slice[2]:{"a","b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Key(tt.name, tt.args...); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_SeparatorInsideParameterDoesNotCollide(t *testing.T) {
	a := Key("related-packages", "x::y", "z")
	b := Key("related-packages", "x", "y::z")
	if a == b {
		t.Errorf("keys collided: %q", a)
	}
}
