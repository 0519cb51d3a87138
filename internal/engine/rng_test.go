package engine

import (
	"testing"
)

func TestSampleDeterminism(t *testing.T) {
	tests := []struct {
		name       string
		serverSeed string
		clientSeed string
		nonce      uint64
	}{
		{
			name:       "basic inputs",
			serverSeed: "test_server_seed",
			clientSeed: "test_client_seed",
			nonce:      0,
		},
		{
			name:       "hex seeds",
			serverSeed: "0000000000000000000000000000000000000000000000000000000000000000",
			clientSeed: "11111111111111111111111111111111",
			nonce:      42,
		},
		{
			name:       "large nonce",
			serverSeed: "another_server_seed",
			clientSeed: "another_client_seed",
			nonce:      1 << 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Sample(tt.serverSeed, tt.clientSeed, tt.nonce)
			second := Sample(tt.serverSeed, tt.clientSeed, tt.nonce)

			if first != second {
				t.Errorf("Sample() not deterministic: %.17f != %.17f", first, second)
			}
		})
	}
}

func TestSampleRange(t *testing.T) {
	for nonce := uint64(0); nonce < 1000; nonce++ {
		f := Sample("range_server", "range_client", nonce)
		if f < 0 || f > 1 {
			t.Fatalf("Sample at nonce %d out of range [0,1]: %f", nonce, f)
		}
	}
}

func TestSampleVariesAcrossInputs(t *testing.T) {
	base := Sample("server_a", "client_a", 0)

	varied := 0
	for nonce := uint64(1); nonce <= 100; nonce++ {
		if Sample("server_a", "client_a", nonce) != base {
			varied++
		}
	}
	if varied == 0 {
		t.Error("samples identical across 100 nonces")
	}

	if Sample("server_b", "client_a", 0) == base && Sample("server_a", "client_b", 0) == base {
		t.Error("samples did not vary when either seed changed")
	}
}

func TestSamplesUseNonceOffsets(t *testing.T) {
	serverSeed := "offset_server"
	clientSeed := "offset_client"
	nonce := uint64(7)

	samples := Samples(serverSeed, clientSeed, nonce, 16)
	if len(samples) != 16 {
		t.Fatalf("Samples() returned %d values, want 16", len(samples))
	}

	for i, s := range samples {
		want := Sample(serverSeed, clientSeed, nonce+uint64(i))
		if s != want {
			t.Errorf("Samples()[%d] = %.17f, want Sample at nonce %d = %.17f", i, s, nonce+uint64(i), want)
		}
	}
}

func TestGenerateServerSeed(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seed, err := GenerateServerSeed()
		if err != nil {
			t.Fatalf("GenerateServerSeed() error: %v", err)
		}
		if len(seed) != 64 {
			t.Fatalf("server seed length %d, want 64 hex chars", len(seed))
		}
		if seen[seed] {
			t.Fatalf("server seed %s generated twice", seed)
		}
		seen[seed] = true
	}
}

func TestGenerateClientSeed(t *testing.T) {
	seed, err := GenerateClientSeed()
	if err != nil {
		t.Fatalf("GenerateClientSeed() error: %v", err)
	}
	if len(seed) != 32 {
		t.Errorf("client seed length %d, want 32 hex chars", len(seed))
	}
}

func TestHashSeed(t *testing.T) {
	// SHA-256("abc") is a standard known vector.
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := HashSeed("abc"); got != want {
		t.Errorf("HashSeed(\"abc\") = %s, want %s", got, want)
	}

	if HashSeed("seed_one") == HashSeed("seed_two") {
		t.Error("distinct seeds produced identical commitments")
	}
}

func TestCommitmentBinding(t *testing.T) {
	commitments := make(map[string]string)
	for i := 0; i < 100; i++ {
		seed, err := GenerateServerSeed()
		if err != nil {
			t.Fatalf("GenerateServerSeed() error: %v", err)
		}

		hash := HashSeed(seed)
		if other, dup := commitments[hash]; dup && other != seed {
			t.Fatalf("commitment collision between %s and %s", other, seed)
		}
		commitments[hash] = seed

		if !CheckCommitment(seed, hash) {
			t.Fatalf("CheckCommitment rejected its own seed")
		}
		if CheckCommitment(seed+"x", hash) {
			t.Fatalf("CheckCommitment accepted a tampered seed")
		}
	}
}
