package parser

import "testing"

func TestExtractContact(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantEmail string
		wantPhone string
	}{
		{name: "email in sentence", text: "Contact: jane.doe@example.com, thanks", wantEmail: "jane.doe@example.com"},
		{name: "phone with country code", text: "Call +1 (555) 123-4567 now", wantPhone: "+1 (555) 123-4567"},
		{name: "dotted phone", text: "Phone 555.123.4567", wantPhone: "555.123.4567"},
		{name: "first match wins", text: "a@x.io b@y.io 0201234567 or 0307654321", wantEmail: "a@x.io", wantPhone: "0201234567"},
		{name: "plus tag in email", text: "jane+jobs@mail.example.org", wantEmail: "jane+jobs@mail.example.org"},
		{name: "short number ignored", text: "Room 12345", wantPhone: ""},
		{name: "non-breaking spaces", text: "Phone: +1\u00a0555\u00a0123\u00a04567", wantPhone: "+1\u00a0555\u00a0123\u00a04567"},
		{name: "thin spaces", text: "Tel 555\u2009123\u20094567", wantPhone: "555\u2009123\u20094567"},
		{name: "nothing", text: "No contact details here"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			email, phone := ExtractContact(tt.text)
			if email != tt.wantEmail {
				t.Fatalf("email = %q, want %q", email, tt.wantEmail)
			}
			if phone != tt.wantPhone {
				t.Fatalf("phone = %q, want %q", phone, tt.wantPhone)
			}
		})
	}
}
