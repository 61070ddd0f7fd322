package extract

import (
	"strings"
	"testing"

	"github.com/hmtrong/catalyst/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.EventType
	}{
		{"pdufa", "The FDA assigned a PDUFA target action date", model.EventPDUFA},
		{"crl", "the Company received a Complete Response Letter", model.EventCRL},
		{"clinical hold", "FDA placed the trial on clinical hold", model.EventClinicalHold},
		{"adcom", "an advisory committee meeting will be held", model.EventAdCom},
		{"submission", "the NDA was submitted to the FDA", model.EventSubmission},
		{"resubmission", "the Company plans to resubmit the NDA", model.EventResubmission},
		{"acceptance", "the application was accepted for filing", model.EventFilingAccept},
		{"topline", "topline results from the Phase 3 study", model.EventTopline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.text)
			if !ok {
				t.Fatal("expected a classification")
			}
			if got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassify_NoAnchor(t *testing.T) {
	if ev, ok := Classify("the company reported quarterly revenue"); ok {
		t.Errorf("expected no classification, got %s", ev)
	}
}

func TestClassify_HighestPriorityWins(t *testing.T) {
	// Both CRL and topline language present; CRL has higher priority.
	text := "following the complete response letter, topline results are expected"
	got, ok := Classify(text)
	if !ok {
		t.Fatal("expected a classification")
	}
	if got != model.EventCRL {
		t.Errorf("expected CRL to outrank topline, got %s", got)
	}
}

func TestClassify_ListOrderBreaksPriorityTies(t *testing.T) {
	// Resubmission and CRL share a priority; resubmission is listed
	// first so it must win when both fire.
	text := "after the CRL, the company will resubmit the NDA this quarter"
	got, ok := Classify(text)
	if !ok {
		t.Fatal("expected a classification")
	}
	if got != model.EventResubmission {
		t.Errorf("expected resubmission on tie, got %s", got)
	}
}

func TestWindows_AroundAnchors(t *testing.T) {
	pad := strings.Repeat("x", 200)
	text := pad + " PDUFA action date " + pad
	windows := Windows(text, model.EventPDUFA, 50, 8)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if len(windows[0]) >= len(text) {
		t.Error("window should be smaller than the document")
	}
	if !strings.Contains(windows[0], "PDUFA") {
		t.Error("window should contain the anchor")
	}
}

func TestWindows_CapAndFallback(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteString("PDUFA date pending. ")
		b.WriteString(strings.Repeat("y", 100))
	}
	windows := Windows(b.String(), model.EventPDUFA, 10, 8)
	if len(windows) != 8 {
		t.Errorf("expected window cap of 8, got %d", len(windows))
	}

	// No anchor hit: one leading slice comes back.
	fallback := Windows(strings.Repeat("z", 20000), model.EventPDUFA, 10, 8)
	if len(fallback) != 1 {
		t.Fatalf("expected 1 fallback window, got %d", len(fallback))
	}
	if len(fallback[0]) != fallbackWindow {
		t.Errorf("expected fallback window of %d chars, got %d", fallbackWindow, len(fallback[0]))
	}
}
