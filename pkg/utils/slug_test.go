package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Contábil São João Ltda", "contabil-sao-joao-ltda"},
		{"JZF Contabilidade & Associados", "jzf-contabilidade-associados"},
		{"  Espaços  extras  ", "espacos-extras"},
		{"Aços Açúcar Ções", "acos-acucar-coes"},
		{"Já-Hifenizado", "ja-hifenizado"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
