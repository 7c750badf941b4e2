// Package types - Amount arithmetic tests
package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

// TestAmountZeroValueIsUnknown keeps the zero value safe: it is the
// unknown amount, not zero money
func TestAmountZeroValueIsUnknown(t *testing.T) {
	var a Amount
	if a.Valid() {
		t.Fatal("zero-value Amount must be unknown")
	}
	if a.String() != "-" {
		t.Errorf("expected \"-\", got %q", a.String())
	}
}

// TestAmountAddPropagatesUnknown makes any unknown operand poison the sum
func TestAmountAddPropagatesUnknown(t *testing.T) {
	known := AmountFromInt(10)

	if got := known.Add(NoAmount()); got.Valid() {
		t.Errorf("known + unknown must be unknown, got %s", got)
	}
	if got := NoAmount().Add(known); got.Valid() {
		t.Errorf("unknown + known must be unknown, got %s", got)
	}

	sum := known.Add(AmountFromInt(5))
	if !sum.Decimal().Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected 15, got %s", sum)
	}
}

// TestAmountMulAndDiv scale only known amounts
func TestAmountMulAndDiv(t *testing.T) {
	a := AmountFromInt(30)

	if got := a.Mul(decimal.NewFromInt(3)); !got.Decimal().Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected 90, got %s", got)
	}
	if got := a.Div(decimal.NewFromInt(2)); !got.Decimal().Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected 15, got %s", got)
	}
	if got := a.Div(decimal.Zero); got.Valid() {
		t.Errorf("division by zero must be unknown, got %s", got)
	}
	if got := NoAmount().Mul(decimal.NewFromInt(3)); got.Valid() {
		t.Errorf("scaled unknown must stay unknown, got %s", got)
	}
}

// TestAmountEqual treats two unknown amounts as equal
func TestAmountEqual(t *testing.T) {
	if !NoAmount().Equal(NoAmount()) {
		t.Error("two unknown amounts must be equal")
	}
	if NoAmount().Equal(AmountFromInt(0)) {
		t.Error("unknown must not equal zero")
	}
	if !AmountFromFloat(1.50).Equal(AmountFromFloat(1.5)) {
		t.Error("1.50 must equal 1.5")
	}
}

// TestAmountJSONRoundTrip encodes unknown as null and numbers as numbers
func TestAmountJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(NoAmount())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "null" {
		t.Errorf("expected null, got %s", data)
	}

	var back Amount
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatal(err)
	}
	if back.Valid() {
		t.Error("null must decode to unknown")
	}

	if err := json.Unmarshal([]byte("12.5"), &back); err != nil {
		t.Fatal(err)
	}
	if !back.Decimal().Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("expected 12.5, got %s", back)
	}
}

// TestResolutionFailed ties failure to the absence of an amount
func TestResolutionFailed(t *testing.T) {
	if Resolved(decimal.NewFromInt(5)).Failed() {
		t.Error("resolved amount must not be failed")
	}
	if !Unresolved("no rate").Failed() {
		t.Error("unresolved must be failed")
	}
	// Manual overrides carry stored amounts as-is, including unknown.
	if !ResolvedAmount(NoAmount()).Failed() {
		t.Error("manual unknown amount must read as failed")
	}
	if ResolvedAmount(AmountFromInt(5)).Failed() {
		t.Error("manual known amount must not be failed")
	}
}
