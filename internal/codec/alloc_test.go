package codec

import "testing"

// TestAllocate_RespectsBudget verifies the allocation never spends
// more bits than the frame carries, for budgets across the range.
func TestAllocate_RespectsBudget(t *testing.T) {
	cfg, _ := Resolve(10000, 16000, 0)
	gains := make([]int, cfg.NumBands)
	for b := range gains {
		gains[b] = 20 + b*2
	}
	alloc := make([]int, cfg.NumBands)

	for _, nbytes := range []int{MinFrameBytes, 40, 100, MaxFrameBytes} {
		allocateBits(&cfg, gains, nbytes, alloc)
		spent := 0
		for b := range alloc {
			if alloc[b] == 1 || alloc[b] > maxCoefBits {
				t.Fatalf("nbytes=%d: invalid width %d for band %d", nbytes, alloc[b], b)
			}
			spent += alloc[b] * cfg.BandWidth(b)
		}
		if spent > nbytes*8-cfg.HeaderBits {
			t.Errorf("nbytes=%d: spent %d bits of %d", nbytes, spent, nbytes*8-cfg.HeaderBits)
		}
	}
}

// TestAllocate_LouderBandsFirst checks a dominant band wins bits over
// quiet ones under a tight budget.
func TestAllocate_LouderBandsFirst(t *testing.T) {
	cfg, _ := Resolve(10000, 16000, 0)
	gains := make([]int, cfg.NumBands)
	for b := range gains {
		gains[b] = 10
	}
	loud := 3
	gains[loud] = 50
	alloc := make([]int, cfg.NumBands)
	allocateBits(&cfg, gains, MinFrameBytes, alloc)

	if alloc[loud] == 0 {
		t.Fatal("dominant band received no bits")
	}
	for b := range alloc {
		if b != loud && alloc[b] > alloc[loud] {
			t.Errorf("quiet band %d (%d bits) out-allocated dominant band (%d bits)", b, alloc[b], alloc[loud])
		}
	}
}

// TestAllocate_SilentBandsGetNothing verifies silent bands never
// consume budget.
func TestAllocate_SilentBandsGetNothing(t *testing.T) {
	cfg, _ := Resolve(10000, 16000, 0)
	gains := make([]int, cfg.NumBands)
	gains[0] = 40
	alloc := make([]int, cfg.NumBands)
	allocateBits(&cfg, gains, MaxFrameBytes, alloc)
	for b := 1; b < cfg.NumBands; b++ {
		if alloc[b] != 0 {
			t.Errorf("silent band %d allocated %d bits", b, alloc[b])
		}
	}
	if alloc[0] != maxCoefBits {
		t.Errorf("sole live band got %d bits, want %d", alloc[0], maxCoefBits)
	}
}

// TestAllocate_Deterministic verifies repeated allocation from the
// same inputs is identical, since the decoder must reproduce it.
func TestAllocate_Deterministic(t *testing.T) {
	cfg, _ := Resolve(7500, 32000, 0)
	gains := make([]int, cfg.NumBands)
	for b := range gains {
		gains[b] = (b*13)%40 + 5
	}
	a := make([]int, cfg.NumBands)
	b := make([]int, cfg.NumBands)
	allocateBits(&cfg, gains, 80, a)
	allocateBits(&cfg, gains, 80, b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("allocation differs at band %d: %d vs %d", i, a[i], b[i])
		}
	}
}
