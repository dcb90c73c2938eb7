package qsig

// QSIG operation, error and service catalogue.
//
// Service identifiers are the ECMA standard numbers of each supplementary service
// (ECMA-164 Name Identification is 13868, ECMA-174 Call Diversion 13873, ...). Operations
// are declared module by module in the order the ASN.1 modules are layered, so a code
// redeclared by a later module overrides the earlier declaration.

// Supplementary service identifiers.
const (
	ServiceNA    uint32 = 13868 // Name identification
	ServiceCT    uint32 = 13869 // Call transfer
	ServiceCC    uint32 = 13870 // Call completion
	ServiceCF    uint32 = 13873 // Call diversion
	ServicePR    uint32 = 13874 // Path replacement
	ServiceCO    uint32 = 14843 // Call offer
	ServiceDND   uint32 = 14844 // Do not disturb
	ServiceCI    uint32 = 14846 // Call intrusion
	ServiceAOC   uint32 = 15050 // Advice of charge
	ServiceRE    uint32 = 15052 // Recall
	ServiceCINT  uint32 = 15054 // Call interception
	ServiceWTMLR uint32 = 15429 // Wireless terminal location registration
	ServiceWTMCH uint32 = 15431 // Wireless terminal call handling
	ServiceWTMAU uint32 = 15433 // Wireless terminal authentication
	ServiceMWI   uint32 = 15506 // Message waiting indication
	ServiceSYNC  uint32 = 15507 // Synchronization
	ServiceCMN   uint32 = 15772 // Common information
	ServiceCPI   uint32 = 15992 // Call interruption
	ServicePUMR  uint32 = 17876 // Private user mobility registration
	ServicePUMCH uint32 = 17878 // Private user mobility call handling
	ServiceSSCT  uint32 = 19460 // Single step call transfer
	ServiceSD    uint32 = 21407 // Simple dialog
	ServiceCIDL  uint32 = 21889 // Call identification and call linkage
	ServiceSMS   uint32 = 325   // Short message service
	ServiceMCR   uint32 = 344   // Multiple call routing
	ServiceMCM   uint32 = 3471  // Message centre monitoring
	ServiceMID   uint32 = 3472  // Mailbox identification
)

type serviceInfo struct {
	short      string
	operations string
}

var serviceNames = map[uint32]serviceInfo{
	ServiceNA:    {"QSIG-NA", "Name-Operations"},
	ServiceCF:    {"QSIG-CF", "Call-Diversion-Operations"},
	ServicePR:    {"QSIG-PR", "Path-Replacement-Operations"},
	ServiceCT:    {"QSIG-CT", "Call-Transfer-Operations"},
	ServiceCC:    {"QSIG-CC", "SS-CC-Operations"},
	ServiceCO:    {"QSIG-CO", "Call-Offer-Operations"},
	ServiceDND:   {"QSIG-DND(O)", "Do-Not-Disturb-Operations"},
	ServiceCI:    {"QSIG-CI", "Call-Intrusion-Operations"},
	ServiceAOC:   {"QSIG-AOC", "SS-AOC-Operations"},
	ServiceRE:    {"QSIG-RE", "Recall-Operations"},
	ServiceCINT:  {"QSIG-CINT", "Call-Interception-Operations"},
	ServiceMWI:   {"QSIG-MWI", "SS-MWI-Operations"},
	ServiceSYNC:  {"SYNC-SIG", "Synchronization-Operations"},
	ServiceCMN:   {"QSIG-CMN", "Common-Information-Operations"},
	ServiceCPI:   {"QSIG-CPI(P)", "Call-Interruption-Operations"},
	ServicePUMR:  {"QSIG-PUMR", "PUM-Registration-Operations"},
	ServicePUMCH: {"QSIG-PUMCH", "Private-User-Mobility-Call-Handling-Operations"},
	ServiceSSCT:  {"QSIG-SSCT", "Single-Step-Call-Transfer-Operations"},
	ServiceWTMLR: {"QSIG-WTMLR", "WTM-Location-Registration-Operations"},
	ServiceWTMCH: {"QSIG-WTMCH", "Wireless-Terminal-Call-Handling-Operations"},
	ServiceWTMAU: {"QSIG-WTMAU", "WTM-Authentication-Operations"},
	ServiceSD:    {"QSIG-SD", "SS-SD-Operations"},
	ServiceCIDL:  {"QSIG-CIDL", "Call-Identification-and-Call-Linkage-Operations"},
	ServiceSMS:   {"QSIG-SMS", "Short-Message-Service-Operations"},
	ServiceMCR:   {"QSIG-MCR", "SS-MCR-Operations"},
	ServiceMCM:   {"QSIG-MCM", "SS-MCM-Operations"},
	ServiceMID:   {"QSIG-MID", "SS-MID-Operations"},
}

const no = NoService

// standardServiceMap is indexed by local opcode.
var standardServiceMap = ServiceMap{
	/*   0 */ 13868, 13868, 13868, 13868, 13874, 13874, 13874, 13869,
	/*   8 */ 13869, 13869, 13869, 13869, 13869, 13869, 13869, 13873,
	/*  16 */ 13873, 13873, 13873, 13873, 13873, 13873, 13873, 13873,
	/*  24 */ no, no, no, 13870, 13870, 13870, 13870, 13870,
	/*  32 */ 13870, 13870, 14843, 14844, 14844, 14844, 14844, 14844,
	/*  40 */ 13870, 90001, 90001, 14846, 14846, 14846, 14846, 14846,
	/*  48 */ 14846, 90001, 15429, 15429, 15429, 15429, 15431, 15431,
	/*  56 */ 15431, 15052, 15052, 15050, 15050, 15050, 15050, 15050,
	/*  64 */ 15050, 15050, 15054, 15054, 15054, 15054, 15054, 15431,
	/*  72 */ 15433, 15433, 15433, 15433, 15433, 15433, 15507, 15507,
	/*  80 */ 15506, 15506, 15506, no, 15772, 15772, 13874, 15992,
	/*  88 */ 15992, 17876, 17876, 17876, 17876, 17878, 17878, 17878,
	/*  96 */ 17878, 15429, 15429, 19460, 19460, 19460, 19460, 21407,
	/* 104 */ 21407, 21889, 21889, 325, 325, 325, 325, 325,
	/* 112 */ 344, 344, 344, 3471, 3471, 3471, 3471, 3472,
	/* 120 */ 3472,
}

// StandardServiceMap returns a copy of the QSIG opcode -> service map.
func StandardServiceMap() ServiceMap {
	return append(ServiceMap(nil), standardServiceMap...)
}

type operationDecl struct {
	opcode int32
	name   string
	module string
}

var standardOperations = []operationDecl{
	{0, "callingName", "QSIG-NA"},
	{1, "calledName", "QSIG-NA"},
	{2, "connectedName", "QSIG-NA"},
	{3, "busyName", "QSIG-NA"},

	{15, "activateDiversionQ", "QSIG-CF"},
	{16, "deactivateDiversionQ", "QSIG-CF"},
	{17, "interrogateDiversionQ", "QSIG-CF"},
	{18, "checkRestriction", "QSIG-CF"},
	{19, "callRerouteing", "QSIG-CF"},
	{20, "divertingLegInformation1", "QSIG-CF"},
	{21, "divertingLegInformation2", "QSIG-CF"},
	{22, "divertingLegInformation3", "QSIG-CF"},
	{23, "cfnrDivertedLegFailed", "QSIG-CF"},

	{4, "pathReplacePropose", "QSIG-PR"},
	{5, "pathReplaceSetup", "QSIG-PR"},
	{6, "pathReplaceRetain", "QSIG-PR"},
	{86, "pathReplaceInvite", "QSIG-PR"},

	{7, "callTransferIdentify", "QSIG-CT"},
	{8, "callTransferAbandon", "QSIG-CT"},
	{9, "callTransferInitiate", "QSIG-CT"},
	{10, "callTransferSetup", "QSIG-CT"},
	{11, "callTransferActive", "QSIG-CT"},
	{12, "callTransferComplete", "QSIG-CT"},
	{13, "callTransferUpdate", "QSIG-CT"},
	{14, "subaddressTransfer", "QSIG-CT"},

	{40, "ccbsRequest", "QSIG-CC"},
	{27, "ccnrRequest", "QSIG-CC"},
	{28, "ccCancel", "QSIG-CC"},
	{29, "ccExecPossible", "QSIG-CC"},
	{30, "ccPathReserve", "QSIG-CC"},
	{31, "ccRingout", "QSIG-CC"},
	{32, "ccSuspend", "QSIG-CC"},
	{33, "ccResume", "QSIG-CC"},
	{41, "pathRetain", "QSIG-CC"},
	{42, "serviceAvailable", "QSIG-CC"},

	{34, "callOfferRequest", "QSIG-CO"},
	{41, "pathRetain", "QSIG-CO"},
	{42, "serviceAvailable", "QSIG-CO"},
	{49, "cfbOverride", "QSIG-CO"},

	{35, "doNotDisturbActivateQ", "QSIG-DND(O)"},
	{36, "doNotDisturbDeactivateQ", "QSIG-DND(O)"},
	{37, "doNotDisturbInterrogateQ", "QSIG-DND(O)"},
	{38, "doNotDisturbOverrideQ", "QSIG-DND(O)"},
	{41, "pathRetain", "QSIG-DND(O)"},
	{42, "serviceAvailable", "QSIG-DND(O)"},
	{39, "doNotDisturbOvrExecuteQ", "QSIG-DND(O)"},

	{43, "callIntrusionRequest", "QSIG-CI"},
	{44, "callIntrusionGetCIPL", "QSIG-CI"},
	{45, "callIntrusionIsolate", "QSIG-CI"},
	{46, "callIntrusionForcedRelease", "QSIG-CI"},
	{47, "callIntrusionWOBRequest", "QSIG-CI"},
	{48, "callIntrusionCompleted", "QSIG-CI"},
	{41, "pathRetain", "QSIG-CI"},
	{42, "serviceAvailable", "QSIG-CI"},
	{49, "cfbOverride", "QSIG-CI"},

	{59, "chargeRequest", "QSIG-AOC"},
	{60, "getFinalCharge", "QSIG-AOC"},
	{61, "aocFinal", "QSIG-AOC"},
	{62, "aocInterim", "QSIG-AOC"},
	{63, "aocRate", "QSIG-AOC"},
	{64, "aocComplete", "QSIG-AOC"},
	{65, "aocDivChargeReq", "QSIG-AOC"},

	{57, "recallAlerting", "QSIG-RE"},
	{58, "recallAnswered", "QSIG-RE"},

	{78, "synchronizationRequest", "SYNC-SIG"},
	{79, "synchronizationInfo", "SYNC-SIG"},

	{66, "cintLegInformation1", "QSIG-CINT"},
	{67, "cintLegInformation2", "QSIG-CINT"},
	{68, "cintCondition", "QSIG-CINT"},
	{69, "cintDisable", "QSIG-CINT"},
	{70, "cintEnable", "QSIG-CINT"},

	{84, "cmnRequest", "QSIG-CMN"},
	{85, "cmnInform", "QSIG-CMN"},

	{87, "callInterruptionRequest", "QSIG-CPI(P)"},
	{88, "callProtectionRequest", "QSIG-CPI(P)"},

	{89, "pumRegistr", "QSIG-PUMR"},
	{90, "pumDelReg", "QSIG-PUMR"},
	{91, "pumDe-reg", "QSIG-PUMR"},
	{92, "pumInterrog", "QSIG-PUMR"},

	{93, "pumiEnquiry", "QSIG-PUMCH"},
	{94, "pumiDivert", "QSIG-PUMCH"},
	{95, "pumiInform", "QSIG-PUMCH"},
	{96, "pumoCall", "QSIG-PUMCH"},

	{99, "ssctInitiate", "QSIG-SSCT"},
	{100, "ssctSetup", "QSIG-SSCT"},
	{101, "ssctPostDial", "QSIG-SSCT"},
	{102, "ssctDigitInfo", "QSIG-SSCT"},

	{50, "locUpdate", "QSIG-WTMLR"},
	{51, "locDelete", "QSIG-WTMLR"},
	{52, "locDelUpdate", "QSIG-WTMLR"},
	{53, "pisnEnquiry", "QSIG-WTMLR"},
	{97, "getRRCInf", "QSIG-WTMLR"},
	{98, "locInfoCheck", "QSIG-WTMLR"},

	{54, "wtmiEnquiry", "QSIG-WTMCH"},
	{55, "wtmiDivert", "QSIG-WTMCH"},
	{56, "wtmiInform", "QSIG-WTMCH"},
	{71, "wtmoCall", "QSIG-WTMCH"},

	{72, "authWtmUser", "QSIG-WTMAU"},
	{73, "getWtatParam", "QSIG-WTMAU"},
	{74, "wtatParamEnq", "QSIG-WTMAU"},
	{75, "getWtanParam", "QSIG-WTMAU"},
	{76, "wtanParamEnq", "QSIG-WTMAU"},
	{77, "transferAuthParam", "QSIG-WTMAU"},

	{103, "display", "QSIG-SD"},
	{104, "keypad", "QSIG-SD"},

	{105, "callIdentificationAssign", "QSIG-CIDL"},
	{106, "callIdentificationUpdate", "QSIG-CIDL"},

	{107, "smsSubmit", "QSIG-SMS"},
	{108, "smsDeliver", "QSIG-SMS"},
	{109, "smsStatusReport", "QSIG-SMS"},
	{110, "smsCommand", "QSIG-SMS"},
	{111, "scAlert", "QSIG-SMS"},

	{112, "mCRequest", "QSIG-MCR"},
	{113, "mCAlerting", "QSIG-MCR"},
	{114, "mCInform", "QSIG-MCR"},

	{80, "mwiActivate", "QSIG-MWI"},
	{81, "mwiDeactivate", "QSIG-MWI"},
	{82, "mwiInterrogate", "QSIG-MWI"},

	{115, "mCMNewMsg", "QSIG-MCM"},
	{116, "mCMNoNewMsg", "QSIG-MCM"},
	{117, "mCMUpdate", "QSIG-MCM"},
	{118, "mCMUpdateReq", "QSIG-MCM"},

	{119, "mIDMailboxAuth", "QSIG-MID"},
	{120, "mIDMailboxID", "QSIG-MID"},
}

type errorDecl struct {
	code   int32
	name   string
	module string
	// extension marks errors whose parameter is the module's Extension type.
	extension bool
}

var standardErrors = []errorDecl{
	{0, "userNotSubscribed", "QSIG-CF", false},
	{3, "notAvailable", "QSIG-CF", false},
	{6, "invalidServedUserNr", "QSIG-CF", false},
	{8, "basicServiceNotProvided", "QSIG-CF", false},
	{11, "resourceUnavailable", "QSIG-CF", false},
	{12, "invalidDivertedToNr", "QSIG-CF", false},
	{14, "specialServiceNr", "QSIG-CF", false},
	{15, "diversionToServedUserNr", "QSIG-CF", false},
	{24, "numberOfDiversionsExceeded", "QSIG-CF", false},
	{1000, "temporarilyUnavailable", "QSIG-CF", false},
	{1007, "notAuthorized", "QSIG-CF", false},
	{1008, "unspecified", "QSIG-CF", true},

	{1000, "temporarilyUnavailable", "QSIG-PR", false},
	{1001, "collision", "QSIG-PR", false},
	{1002, "criteriaPermanentlyUnachievable", "QSIG-PR", false},
	{1003, "criteriaTemporarilyUnachievable", "QSIG-PR", false},
	{1004, "invalidRerouteingNumber", "QSIG-PR", false},
	{1005, "unrecognizedCallIdentity", "QSIG-PR", false},
	{1006, "establishmentFailure", "QSIG-PR", false},
	{1008, "unspecified", "QSIG-PR", true},

	{3, "notAvailable", "QSIG-CT", false},
	{7, "invalidCallState", "QSIG-CT", false},
	{10, "supplementaryServiceInteractionNotAllowed", "QSIG-CT", false},
	{1004, "invalidRerouteingNumber", "QSIG-CT", false},
	{1005, "unrecognizedCallIdentity", "QSIG-CT", false},
	{1006, "establishmentFailure", "QSIG-CT", false},
	{1008, "unspecified", "QSIG-CT", true},

	{1008, "unspecified", "QSIG-CC", true},
	{1010, "shortTermRejection", "QSIG-CC", false},
	{1011, "longTermRejection", "QSIG-CC", false},
	{1012, "remoteUserBusyAgain", "QSIG-CC", false},
	{1013, "failureToMatch", "QSIG-CC", false},

	{1000, "temporarilyUnavailable", "QSIG-CO", false},
	{1008, "unspecified", "QSIG-CO", true},
	{1009, "notBusy", "QSIG-CO", false},

	{1000, "temporarilyUnavailable", "QSIG-DND(O)", false},
	{1007, "notAuthorized", "QSIG-DND(O)", false},
	{1008, "unspecified", "QSIG-DND(O)", true},

	{1000, "temporarilyUnavailable", "QSIG-CI", false},
	{1007, "notAuthorized", "QSIG-CI", false},
	{1008, "unspecified", "QSIG-CI", true},
	{1009, "notBusy", "QSIG-CI", false},

	{1008, "unspecified", "QSIG-AOC", true},
	{1016, "freeOfCharge", "QSIG-AOC", false},

	{1008, "unspecified", "QSIG-RE", true},
	{1008, "unspecified", "SYNC-SIG", true},
	{1008, "unspecified", "QSIG-CINT", true},
	{1008, "unspecified", "QSIG-CMN", true},

	{1000, "temporarilyUnavailable", "QSIG-CPI(P)", false},
	{1007, "notAuthorized", "QSIG-CPI(P)", false},
	{1008, "unspecified", "QSIG-CPI(P)", true},

	{1000, "temporarilyUnavailable", "QSIG-PUMR", false},
	{1007, "notAuthorized", "QSIG-PUMR", false},
	{1008, "unspecified", "QSIG-PUMR", true},

	{1008, "unspecified", "QSIG-SSCT", true},

	{1008, "unspecified", "QSIG-MWI", true},
	{1018, "invalidMsgCentreId", "QSIG-MWI", false},

	{1000, "temporarilyUnavailable", "QSIG-SMS", false},
	{1008, "unspecified", "QSIG-SMS", true},
}

// Binding attaches payload decoders to one operation.
type Binding struct {
	Argument Decoder
	Result   Decoder
}

// Bindings attaches embedder-supplied decoders to the standard catalogue. Map keys are
// either "Module.name" (e.g. "QSIG-NA.callingName"), which targets one declaration, or a
// bare name, which targets every module declaring it. The qualified key is tried first.
type Bindings struct {
	Operations map[string]Binding
	Errors     map[string]Decoder

	// Default, when set, decodes every payload that has no explicit binding.
	Default Decoder
}

// StandardBindings binds the typed decoders of this package to their operations. Each
// call returns a new value, so callers may add entries or set Default.
func StandardBindings() Bindings {
	name := Binding{Argument: NameDecoder{}}
	return Bindings{
		Operations: map[string]Binding{
			"QSIG-NA.callingName":   name,
			"QSIG-NA.calledName":    name,
			"QSIG-NA.connectedName": name,
			"QSIG-NA.busyName":      name,
		},
	}
}

// StandardOperations builds the QSIG operation table with the given bindings.
func StandardOperations(b Bindings) *OperationTable {
	records := make([]OperationRecord, 0, len(standardOperations))
	for _, d := range standardOperations {
		rec := OperationRecord{Opcode: d.opcode, Name: d.name, Module: d.module}

		binding, ok := b.Operations[d.module+"."+d.name]
		if !ok {
			binding, ok = b.Operations[d.name]
		}
		if ok {
			rec.Argument, rec.Result = binding.Argument, binding.Result
		} else if b.Default != nil {
			rec.Argument, rec.Result = b.Default, b.Default
		}

		records = append(records, rec)
	}
	return NewOperationTable(records)
}

// StandardErrors builds the QSIG error table with the given bindings. Errors whose
// parameter is an Extension are bound to ExtensionDecoder unless overridden.
func StandardErrors(b Bindings) *ErrorTable {
	records := make([]ErrorRecord, 0, len(standardErrors))
	for _, d := range standardErrors {
		rec := ErrorRecord{Code: d.code, Name: d.name, Module: d.module}

		dec, ok := b.Errors[d.module+"."+d.name]
		if !ok {
			dec, ok = b.Errors[d.name]
		}
		switch {
		case ok:
			rec.Parameter = dec
		case d.extension:
			rec.Parameter = ExtensionDecoder{}
		default:
			rec.Parameter = b.Default
		}

		records = append(records, rec)
	}
	return NewErrorTable(records)
}

// NewStandardDispatcher wires the standard catalogue and service map into a Dispatcher.
func NewStandardDispatcher(b Bindings) *Dispatcher {
	return NewDispatcher(StandardOperations(b), StandardErrors(b), StandardServiceMap())
}
