// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "testing"

func TestStrWeak(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Reactive Path", "reactive path"},
		{"strips diacritics", "Déjà Vu", "deja vu"},
		{"collapses whitespace", "a   b\t\tc", "a b c"},
		{"keeps punctuation", "Robots, Nonholonomic!", "robots, nonholonomic!"},
		{"idempotent", "ALREADY lower", "already lower"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StrWeak(tt.in)
			if got != tt.want {
				t.Errorf("StrWeak(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := StrWeak(got); again != got {
				t.Errorf("StrWeak not idempotent: StrWeak(%q) = %q", got, again)
			}
		})
	}
}

func TestStr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"drops punctuation", "Reactive Path Deformation for Nonholonomic Mobile Robots", "reactive path deformation for nonholonomic mobile robots"},
		{"strips commas and bangs", "Robots, Nonholonomic!", "robots nonholonomic"},
		{"numbers kept", "2301.07041", "230107041"},
		{"only whitespace/punctuation", "   ,,, !! ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Str(tt.in)
			if got != tt.want {
				t.Errorf("Str(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Str(got); again != got {
				t.Errorf("Str not idempotent: Str(%q) = %q", got, again)
			}
		})
	}
}

func TestDOI(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare doi", "10.1109/tro.2004.829459", "10.1109/tro.2004.829459", false},
		{"https doi.org prefix", "https://doi.org/10.1000/123456", "10.1000/123456", false},
		{"http dx.doi.org prefix", "http://dx.doi.org/10.1000/123456", "10.1000/123456", false},
		{"uppercase normalized", "10.1000/ABC123", "10.1000/abc123", false},
		{"whitespace trimmed", "  10.1000/123456  ", "10.1000/123456", false},
		{"invalid shape", "not-a-doi", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DOI(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DOI(%q) expected error, got %q", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DOI(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DOI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	t.Run("valid https", func(t *testing.T) {
		host, pq, err := URL("https://Example.com/a/b?x=1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if host != "example.com" || pq != "/a/b?x=1" {
			t.Errorf("got (%q, %q)", host, pq)
		}
	})

	t.Run("malformed scheme-less", func(t *testing.T) {
		if _, _, err := URL("http//bad"); err == nil {
			t.Fatalf("expected error for malformed URL")
		}
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		if _, _, err := URL("ftp://example.com/a"); err == nil {
			t.Fatalf("expected error for ftp scheme")
		}
	})
}

func TestMonth(t *testing.T) {
	tests := []struct{ in, want string }{
		{"jan", "1"},
		{"January", "1"},
		{"DEC", "12"},
		{"7", "7"},
		{"13", "13"}, // out of range, unchanged
		{"not-a-month", "not-a-month"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Month(tt.in); got != tt.want {
				t.Errorf("Month(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "reactive path", "reactive path", 1},
		{"both empty", "", "", 1},
		{"one empty", "abc", "", 0},
		{"one substitution", "kitten", "sitten", 5.0 / 6.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestISBN(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid isbn10", "0-306-40615-2", "0306406152", false},
		{"valid isbn10 with X check digit", "080442957X", "080442957X", false},
		{"valid isbn13", "978-3-16-148410-0", "9783161484100", false},
		{"invalid checksum", "0-306-40615-3", "", true},
		{"wrong length", "12345", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ISBN(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ISBN(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ISBN(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ISBN(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
