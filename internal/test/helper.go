package test

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func DummyLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})

	writer := zap.CombineWriteSyncers(zapcore.AddSync(os.Stderr), zapcore.AddSync(w))

	l := zap.New(zapcore.NewCore(encoder, writer, zapcore.DebugLevel))
	zap.RedirectStdLog(l)

	return l
}

var residueNames = map[rune]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE",
	'G': "GLY", 'H': "HIS", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN", 'R': "ARG",
	'S': "SER", 'T': "THR", 'V': "VAL", 'W': "TRP", 'Y': "TYR",
}

// Structure renders a single-chain PDB with one alpha carbon per
// residue, carrying the given confidence in the B-factor column. The
// output passes for fold API output in tests.
func Structure(sequence string, confidence float64) string {
	var b strings.Builder

	for i, r := range sequence {
		name, found := residueNames[r]
		if !found {
			name = "UNK"
		}

		fmt.Fprintf(&b, "ATOM  %5d  CA  %3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f\n",
			i+1, name, i+1, float64(i)*3.8, 0.0, 0.0, 1.0, confidence)
	}
	b.WriteString("END\n")

	return b.String()
}
