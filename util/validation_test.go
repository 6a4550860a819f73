package util

import (
	"strings"
	"testing"
)

func TestIsValidTweetText(t *testing.T) {
	if ok, _ := IsValidTweetText(""); ok {
		t.Error("Empty text should be invalid")
	}
	if ok, _ := IsValidTweetText("   \n "); ok {
		t.Error("Blank text should be invalid")
	}
	if ok, _ := IsValidTweetText(strings.Repeat("x", 281)); ok {
		t.Error("281 characters should be invalid")
	}
	if ok, msg := IsValidTweetText(strings.Repeat("x", 280)); !ok {
		t.Errorf("280 characters should be valid: %s", msg)
	}
	if ok, msg := IsValidTweetText("hello #world"); !ok {
		t.Errorf("Normal tweet should be valid: %s", msg)
	}
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{"a@b.com", "first.last@sub.example.org"} {
		if ok, msg := IsValidEmail(email); !ok {
			t.Errorf("%s should be valid: %s", email, msg)
		}
	}
	for _, email := range []string{"", "nope", "a@b", "a b@c.com", "@x.com"} {
		if ok, _ := IsValidEmail(email); ok {
			t.Errorf("%s should be invalid", email)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	for _, phone := range []string{"123456", "+49 170 1234567", "030-123456"} {
		if ok, msg := IsValidPhone(phone); !ok {
			t.Errorf("%s should be valid: %s", phone, msg)
		}
	}
	for _, phone := range []string{"", "abc", "+", "1234567890123456"} {
		if ok, _ := IsValidPhone(phone); ok {
			t.Errorf("%s should be invalid", phone)
		}
	}
}

func TestIsValidName(t *testing.T) {
	if ok, _ := IsValidName("  "); ok {
		t.Error("Blank name should be invalid")
	}
	if ok, _ := IsValidName(strings.Repeat("x", 51)); ok {
		t.Error("51 characters should be invalid")
	}
	if ok, msg := IsValidName("Ada Lovelace"); !ok {
		t.Errorf("Normal name should be valid: %s", msg)
	}
}
