package tx

import (
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"
)

// Virtual-size constants in vbytes. Input costs assume standard key-path
// spends; output costs are the serialized TxOut size for each script shape.
const (
	// TxOverheadVBytes covers version, locktime, and the input/output
	// count varints.
	TxOverheadVBytes = 10

	// TaprootInputVBytes is a P2TR key-path spend input.
	TaprootInputVBytes = 58

	// WitnessInputVBytes is a P2WPKH input.
	WitnessInputVBytes = 68

	// LegacyInputVBytes is a P2PKH input with a full signature script.
	LegacyInputVBytes = 148

	// WitnessKeyOutputVBytes is an output paying a 20-byte witness program.
	WitnessKeyOutputVBytes = 31

	// WitnessScriptOutputVBytes is an output paying a 32-byte witness
	// program (P2WSH or P2TR).
	WitnessScriptOutputVBytes = 43

	// ScriptHashOutputVBytes is a P2SH output.
	ScriptHashOutputVBytes = 32

	// PubKeyHashOutputVBytes is a P2PKH output.
	PubKeyHashOutputVBytes = 34

	// ChangeOutputVBytes is the default budget for a not-yet-added change
	// output (standard P2WPKH change).
	ChangeOutputVBytes = WitnessKeyOutputVBytes
)

const (
	// DustThreshold is the minimum change output value in satoshis. A
	// remainder below this is folded into the miner fee instead of
	// producing an uneconomical output.
	DustThreshold = uint64(546)

	// MinOutputValue is the floor for requested payment outputs. This is
	// a stricter limit than DustThreshold and applies to outputs the user
	// asks for, not to change.
	MinOutputValue = uint64(1000)

	// DefaultFeeRate is the fallback fee rate in sat/vB.
	DefaultFeeRate = uint64(1)
)

// InputKind classifies a transaction input by its spend path.
type InputKind int

const (
	// InputLegacy is a P2PKH input.
	InputLegacy InputKind = iota
	// InputWitness is a segwit v0 key input.
	InputWitness
	// InputTaproot is a taproot key-path input.
	InputTaproot
)

// ClassifyInput determines the input kind from the populated PSBT fields.
// Taproot takes precedence over segwit, segwit over legacy.
func ClassifyInput(in *psbt.PInput) InputKind {
	if len(in.TaprootInternalKey) > 0 {
		return InputTaproot
	}
	if in.WitnessUtxo != nil {
		if len(in.WitnessUtxo.PkScript) == 34 && in.WitnessUtxo.PkScript[0] == txscript.OP_1 {
			return InputTaproot
		}
		return InputWitness
	}
	return InputLegacy
}

// ClassifyCoin determines the input kind a coin would produce when spent,
// from its locking script.
func ClassifyCoin(c *Coin) InputKind {
	s := c.PkScript
	switch {
	case len(s) == 34 && s[0] == txscript.OP_1 && s[1] == txscript.OP_DATA_32:
		return InputTaproot
	case len(s) == 22 && s[0] == txscript.OP_0 && s[1] == txscript.OP_DATA_20:
		return InputWitness
	default:
		return InputLegacy
	}
}

// InputVBytes returns the virtual size contribution of one input of the
// given kind.
func InputVBytes(kind InputKind) int {
	switch kind {
	case InputTaproot:
		return TaprootInputVBytes
	case InputWitness:
		return WitnessInputVBytes
	default:
		return LegacyInputVBytes
	}
}

// OutputVBytes returns the virtual size contribution of one output with the
// given locking script. Unknown script shapes are costed as P2PKH.
func OutputVBytes(pkScript []byte) int {
	switch {
	case len(pkScript) == 22 && pkScript[0] == txscript.OP_0 && pkScript[1] == txscript.OP_DATA_20:
		return WitnessKeyOutputVBytes
	case len(pkScript) == 34 && pkScript[1] == txscript.OP_DATA_32 &&
		(pkScript[0] == txscript.OP_0 || pkScript[0] == txscript.OP_1):
		return WitnessScriptOutputVBytes
	case len(pkScript) == 23 && pkScript[0] == txscript.OP_HASH160:
		return ScriptHashOutputVBytes
	default:
		return PubKeyHashOutputVBytes
	}
}

// EstimateVBytes returns the estimated virtual size of the partially built
// transaction plus extra vbytes budgeted by the caller (typically
// ChangeOutputVBytes for a change output that has not been added yet).
func EstimateVBytes(packet *psbt.Packet, extra int) int {
	size := TxOverheadVBytes + extra
	for i := range packet.Inputs {
		size += InputVBytes(ClassifyInput(&packet.Inputs[i]))
	}
	for _, out := range packet.UnsignedTx.TxOut {
		size += OutputVBytes(out.PkScript)
	}
	return size
}

// EstimateFee returns the fee in satoshis for a transaction of the given
// virtual size at the given fee rate. Rates are integral sat/vB, so the
// product is already rounded up.
func EstimateFee(vbytes int, feeRate uint64) uint64 {
	if feeRate == 0 {
		feeRate = DefaultFeeRate
	}
	return uint64(vbytes) * feeRate
}
