/*
Package qsig resolves and dispatches QSIG supplementary-service operations carried in ROSE
APDUs.

# Resolution

A ROSE component names an operation (Invoke, ReturnResult) or an error (ReturnError) by a
local INTEGER code or by a global OBJECT IDENTIFIER. Global codes are reduced to their final
arc and then treated exactly like local codes.

QSIG is specified as a stack of ASN.1 modules, one per supplementary service, and a later
module may redefine a code that an earlier module already declared. The operation and error
tables therefore accept duplicate codes and keep the LAST declared record:

	NewErrorTable([]ErrorRecord{
	    {Code: 1008, Name: "unspecified", Module: "QSIG-CT"},
	    {Code: 1008, Name: "unspecified", Module: "QSIG-CC"}, // wins
	})

# Services

Each operation code belongs to one supplementary service (Name Identification, Call
Diversion, ...). The ServiceMap classifies a code; some codes are shared by several services
and classify as "spans multiple services", codes outside the map as "unclassified".

# Payloads

The per-operation payload decoders are supplied by the embedding application through the
Decoder interface and attached with Bindings. When a code resolves but no decoder is bound,
the dispatcher reports an unsupported shape and still consumes the remaining bytes, so that
decoding of the surrounding message can continue.

# Extensions

Manufacturer extensions are identified by OID and resolved through an ExtensionRegistry that
is filled at start-up and read-only afterwards. An OID nobody registered is not an error: the
argument is kept as an opaque, OID-tagged blob.
*/
package qsig
