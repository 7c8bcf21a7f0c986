package wallet

import "context"

// Vendor identifies a supported wallet extension.
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorUnisat
	VendorOKX
	VendorMetalet
)

// String returns the lowercase vendor name.
func (v Vendor) String() string {
	switch v {
	case VendorUnisat:
		return "unisat"
	case VendorOKX:
		return "okx"
	case VendorMetalet:
		return "metalet"
	default:
		return "unknown"
	}
}

// ParseVendor maps a vendor name to its Vendor value.
func ParseVendor(name string) (Vendor, error) {
	switch name {
	case "unisat":
		return VendorUnisat, nil
	case "okx":
		return VendorOKX, nil
	case "metalet":
		return VendorMetalet, nil
	default:
		return VendorUnknown, ErrUnsupportedVendor
	}
}

// SignOptions carries per-input signing directives for SignPSBT.
type SignOptions struct {
	// InputIndexes restricts signing to the listed inputs. Empty means
	// sign every input the wallet controls.
	InputIndexes []int

	// SighashType overrides the sighash for the signed inputs when
	// non-zero.
	SighashType uint32

	// AutoFinalize finalizes signed inputs after signing.
	AutoFinalize bool
}

// Provider abstracts a wallet extension. Implementations bridge to the
// vendor's signing interface; the library never holds private keys.
type Provider interface {
	// Vendor identifies the wallet implementation.
	Vendor() Vendor

	// Connect requests access and returns the funding address.
	Connect(ctx context.Context) (string, error)

	// PublicKey returns the compressed public key for the funding address.
	PublicKey(ctx context.Context) ([]byte, error)

	// SignPSBT signs the serialized packet and returns the signed bytes.
	SignPSBT(ctx context.Context, packet []byte, opts *SignOptions) ([]byte, error)

	// Push broadcasts a finalized transaction and returns its txid.
	Push(ctx context.Context, rawTx []byte) (string, error)
}
