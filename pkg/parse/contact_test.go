package parse

import (
	"strings"
	"testing"
)

func TestExtractContactInfo_Phones(t *testing.T) {
	html := `<body>
		<p>Call +1 555-987-6543</p>
		<p>Fax: 555.222.3333</p>
	</body>`

	contact := ExtractContactInfo(mustDoc(t, html))

	// Both patterns run over the full text and matches are appended
	// without dedup, so each number appears once per matching pattern.
	if len(contact.PhoneNumbers) != 4 {
		t.Fatalf("expected 4 phone matches, got %d: %v", len(contact.PhoneNumbers), contact.PhoneNumbers)
	}
	joined := strings.Join(contact.PhoneNumbers, " | ")
	for _, want := range []string{"555-987-6543", "555.222.3333"} {
		if !strings.Contains(joined, want) {
			t.Errorf("phone matches %q missing %q", joined, want)
		}
	}
}

func TestExtractContactInfo_Hours(t *testing.T) {
	html := `<body>
		<div class="header">Welcome to Acme</div>
		<div class="info">
			<div class="hours-block">Business Hours: Mon-Fri 9am-5pm</div>
			<div class="address">123 Main St</div>
		</div>
	</body>`

	contact := ExtractContactInfo(mustDoc(t, html))

	if contact.BusinessHours == nil {
		t.Fatal("expected business hours to be found")
	}
	if *contact.BusinessHours != "Business Hours: Mon-Fri 9am-5pm" {
		t.Errorf("hours = %q, want the innermost matching block", *contact.BusinessHours)
	}
}

func TestExtractContactInfo_NoHours(t *testing.T) {
	contact := ExtractContactInfo(mustDoc(t, `<body><p>Just a page.</p></body>`))
	if contact.BusinessHours != nil {
		t.Errorf("expected nil hours, got %q", *contact.BusinessHours)
	}
}
