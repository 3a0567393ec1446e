package export

import (
	"testing"

	"github.com/xnaught/PresentMon-sub004/pkg/testutil"
)

func TestDeriveKeyPair(t *testing.T) {
	tests := []struct {
		name      string
		secretKey string
		wantErr   bool
	}{
		{"valid nsec", testutil.TestSK, false},
		{"valid hex", testutil.TestSKHex, false},
		{"invalid hex", "zz" + testutil.TestSKHex[2:], true},
		{"npub instead of nsec", testutil.TestPK, true},
		{"garbage", "not-a-key", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyPair, err := DeriveKeyPair(tt.secretKey)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if keyPair.PrivateKeyHex != testutil.TestSKHex {
				t.Errorf("expected private key %s, got %s", testutil.TestSKHex, keyPair.PrivateKeyHex)
			}
			if keyPair.PrivateKeyBech32 != testutil.TestSK {
				t.Errorf("expected nsec %s, got %s", testutil.TestSK, keyPair.PrivateKeyBech32)
			}
			if keyPair.PublicKeyHex != testutil.TestPKHex {
				t.Errorf("expected public key %s, got %s", testutil.TestPKHex, keyPair.PublicKeyHex)
			}
			if keyPair.PublicKeyBech32 != testutil.TestPK {
				t.Errorf("expected npub %s, got %s", testutil.TestPK, keyPair.PublicKeyBech32)
			}
		})
	}
}
