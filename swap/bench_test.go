package swap

import (
	"math/big"
	"testing"
)

func BenchmarkQuoteSwapForward(b *testing.B) {
	r := Reserves{
		Token1:     big.NewInt(1_000_000),
		Token2:     big.NewInt(50_000_000),
		LPSupply:   big.NewInt(7_000_000),
		FeeRateBps: 30,
	}
	in := big.NewInt(10_000)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := QuoteSwapForward(in, r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPriceImpact(b *testing.B) {
	r := Reserves{
		Token1:     big.NewInt(1_000_000),
		Token2:     big.NewInt(50_000_000),
		LPSupply:   big.NewInt(7_000_000),
		FeeRateBps: 30,
	}
	in := big.NewInt(10_000)
	out, _ := QuoteSwapForward(in, r)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := PriceImpact(in, out, r, Forward); err != nil {
			b.Fatal(err)
		}
	}
}
