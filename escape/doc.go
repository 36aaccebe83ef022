// Package escape builds the escape-sequence command protocol of the Digilent
// PmodCLS serial character LCD controller.
//
// Every controller command is a byte sequence of the form
//
//	ESC '[' <param-digits>... <opcode>
//
// where ESC is 0x1B, '[' is 0x5B, numeric parameters are ASCII digit
// characters (value + '0'), and the opcode is a single terminating byte from
// a closed table. Column indices are always two digits (tens then ones).
// Custom character definitions carry their row data as literal hexadecimal
// text tokens of the form "0xNN;" instead of digit parameters.
//
// The package is pure: every function validates its operands against the
// controller's documented domain and returns the finished byte sequence, or
// a sentinel error when an operand is out of range. Nothing here touches the
// bus; dispatch is the pmodcls package's job.
//
// Example:
//
//	seq, err := escape.Position(1, 7)
//	// seq == []byte{0x1B, '[', '1', ';', '0', '7', 'H'}
package escape
