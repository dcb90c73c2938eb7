/*
Package rose parses ROSE (Remote Operations Service Element) components as carried in the
facility information element of QSIG call-control messages.

# Components

ROSE defines four component types, each a context-specific constructed tag:

	[1] Invoke       { invokeId INTEGER, linkedId [0] INTEGER OPTIONAL, opcode, argument ANY OPTIONAL }
	[2] ReturnResult { invokeId INTEGER, SEQUENCE { opcode, result ANY } OPTIONAL }
	[3] ReturnError  { invokeId INTEGER, errcode, parameter ANY OPTIONAL }
	[4] Reject       { invokeId INTEGER | NULL, problem [0..3] INTEGER }

# Codes

Operation and error codes come in two forms:
  - Local: a small INTEGER, unique by convention within QSIG.
  - Global: an OBJECT IDENTIFIER, carried here in its dotted form.

The package only splits the envelope. The argument, result and error parameter payloads are
returned as raw bytes, exactly as received, for the operation dispatcher in package qsig.
Only definite-length encodings are accepted.
*/
package rose
