package sanitize

import (
	"strings"
	"testing"
)

func TestHTMLPlainTextUnchanged(t *testing.T) {
	if got := HTML("Bonjour tout le monde"); got != "Bonjour tout le monde" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestHTMLKeepsFormatting(t *testing.T) {
	in := "<p><strong>Gras</strong> et <em>italique</em></p>"
	if got := HTML(in); got != in {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestHTMLRemovesScript(t *testing.T) {
	got := HTML(`<p>Résultats</p><script>alert("xss")</script>`)
	if got != "<p>Résultats</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestHTMLRemovesEventHandlers(t *testing.T) {
	in := `<p onclick="alert('xss')">texte</p>`
	if got := HTML(in); got == in {
		t.Error("expected onclick attribute to be removed")
	}
}

func TestHTMLRemovesJavascriptHref(t *testing.T) {
	in := `<a href="javascript:alert('xss')">lien</a>`
	if got := HTML(in); got == in {
		t.Error("expected javascript: href to be removed")
	}
}

func TestHTMLAllowsSafeLinks(t *testing.T) {
	got := HTML(`<a href="https://politiquensemble.fr">lien</a>`)
	if !strings.Contains(got, "https://politiquensemble.fr") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestHTMLKeepsExtendedFormatting(t *testing.T) {
	in := "<u>souligné</u> <s>barré</s> <mark>surligné</mark>"
	if got := HTML(in); got != in {
		t.Errorf("expected extended formatting preserved, got %q", got)
	}
}
