package main

import "testing"

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"cuda:0,cuda:1,cpu", []string{"cuda:0", "cuda:1", "cpu"}},
		{" cuda:0 , cpu ", []string{"cuda:0", "cpu"}},
		{"cpu,,cpu", []string{"cpu", "cpu"}},
		{"", nil},
		{"  ", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}
