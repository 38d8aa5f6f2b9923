package vector

import (
	"errors"
	"testing"

	"github.com/huangsam/cvsspop/schema"
)

func FuzzParse(f *testing.F) {
	f.Add("CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:N/I:N/A:N")
	f.Add("CVSS:4.0/AV:N/AC:L/AT:X/PR:N")
	f.Add("CVSS:4.0/")
	f.Add("not-a-vector")
	f.Add("CVSS:3.1///::/AV::N")

	f.Fuzz(func(t *testing.T, text string) {
		p, err := Parse(text)
		if errors.Is(err, ErrUnknownPrefix) {
			return
		}

		ms, ok := schema.SchemaFor(p.Standard)
		if !ok {
			t.Fatalf("parse returned unknown standard %q for %q", p.Standard, text)
		}
		// Every reported pair must be legal, even when err is non-nil.
		for k, v := range p.Pairs {
			if !ms.IsLegal(k, v) {
				t.Fatalf("illegal pair %s:%s reported for %q", k, v, text)
			}
		}

		// Serializing the legal pairs must parse back to the same pairs.
		again, err := Parse(Serialize(p.Standard, p.Pairs))
		if err != nil {
			t.Fatalf("re-parse failed: %v", err)
		}
		if !again.Pairs.Equal(p.Pairs) {
			t.Fatalf("round trip mismatch: %v != %v", again.Pairs, p.Pairs)
		}
	})
}
