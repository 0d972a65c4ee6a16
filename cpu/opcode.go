package cpu

import (
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Opcode is an entry of the instruction table.
type Opcode struct {
	Code byte // Opcode byte.
	Size int  // Encoded size in bytes, including the opcode byte.
}

// Constants returns the number of constant bytes following the opcode byte.
func (op Opcode) Constants() int {
	return op.Size - 1
}

// opcodeTable maps each canonical instruction form to its opcode.
// Placeholders are printf verbs: %02x for an 8-bit constant, %04x for 16 bits.
var opcodeTable = map[string]Opcode{
	"nop":          {0, 1},
	"mov a,#%02x":  {1, 2},
	"mov a,*%04x":  {2, 3},
	"mov a,b":      {3, 1},
	"mov a,c":      {4, 1},
	"mov a,d":      {5, 1},
	"mov b,#%02x":  {6, 2},
	"mov b,*%04x":  {7, 3},
	"mov b,a":      {8, 1},
	"mov b,c":      {9, 1},
	"mov b,d":      {10, 1},
	"mov c,#%02x":  {11, 2},
	"mov c,*%04x":  {12, 3},
	"mov c,a":      {13, 1},
	"mov c,b":      {14, 1},
	"mov c,d":      {15, 1},
	"mov d,#%02x":  {16, 2},
	"mov d,*%04x":  {17, 3},
	"mov d,a":      {18, 1},
	"mov d,b":      {19, 1},
	"mov d,c":      {20, 1},
	"mov sp,#%04x": {21, 3},
	"mov sp,*%04x": {22, 3},
	"mov sp,si":    {23, 1},
	"mov si,#%04x": {24, 3},
	"mov si,*%04x": {25, 3},
	"mov si,cd":    {26, 1},
	"mov di,#%04x": {27, 3},
	"mov di,*%04x": {28, 3},
	"mov di,cd":    {29, 1},
	"mov a,*si":    {30, 1},
	"mov b,*si":    {31, 1},
	"mov c,*si":    {32, 1},
	"mov d,*si":    {33, 1},
	"mov a,*di":    {34, 1},
	"mov b,*di":    {35, 1},
	"mov c,*di":    {36, 1},
	"mov d,*di":    {37, 1},
	"mov *di,*si":  {38, 1},
	"jmp #%04x":    {39, 3},
	"jnz #%04x":    {40, 3},
	"jc #%04x":     {41, 3},
	"jv #%04x":     {42, 3},
	"call #%04x":   {43, 3},
	"ret":          {44, 1},
	"push a":       {45, 1},
	"push b":       {46, 1},
	"push c":       {47, 1},
	"push d":       {48, 1},
	"push si":      {49, 1},
	"push di":      {50, 1},
	"pop a":        {51, 1},
	"pop b":        {52, 1},
	"pop c":        {53, 1},
	"pop d":        {54, 1},
	"pop si":       {55, 1},
	"pop di":       {56, 1},
	"mov *%04x,a":  {57, 3},
	"mov *di,a":    {58, 1},
	"mov *%04x,b":  {59, 3},
	"mov *di,b":    {60, 1},
	"mov *%04x,c":  {61, 3},
	"mov *di,c":    {62, 1},
	"mov *%04x,d":  {63, 3},
	"mov *di,d":    {64, 1},
	"mov *%04x,si": {65, 3},
	"mov *%04x,di": {66, 3},
	"mov *%04x,cd": {67, 3},
	"mov *si,cd":   {68, 1},
	"mov *di,cd":   {69, 1},
	"add a,b":      {70, 1},
	"adc a,b":      {71, 1},
	"sub a,b":      {72, 1},
	"sbb a,b":      {73, 1},
	"and a,b":      {74, 1},
	"or a,b":       {75, 1},
	"xor a,b":      {76, 1},
	"not a":        {77, 1},
	"shl a":        {78, 1},
	"shr a":        {79, 1},
	"add a,c":      {80, 1},
	"adc a,c":      {81, 1},
	"sub a,c":      {82, 1},
	"sbb a,c":      {83, 1},
	"and a,c":      {84, 1},
	"or a,c":       {85, 1},
	"xor a,c":      {86, 1},
	"add a,d":      {87, 1},
	"adc a,d":      {88, 1},
	"sub a,d":      {89, 1},
	"sbb a,d":      {90, 1},
	"and a,d":      {91, 1},
	"or a,d":       {92, 1},
	"xor a,d":      {93, 1},
	"add b,c":      {94, 1},
	"adc b,c":      {95, 1},
	"sub b,c":      {96, 1},
	"sbb b,c":      {97, 1},
	"and b,c":      {98, 1},
	"or b,c":       {99, 1},
	"xor b,c":      {100, 1},
	"not b":        {101, 1},
	"shl b":        {102, 1},
	"shr b":        {103, 1},
	"add b,d":      {104, 1},
	"adc b,d":      {105, 1},
	"sub b,d":      {106, 1},
	"sbb b,d":      {107, 1},
	"and b,d":      {108, 1},
	"or b,d":       {109, 1},
	"xor b,d":      {110, 1},
	"add c,d":      {111, 1},
	"adc c,d":      {112, 1},
	"sub c,d":      {113, 1},
	"sbb c,d":      {114, 1},
	"and c,d":      {115, 1},
	"or c,d":       {116, 1},
	"xor c,d":      {117, 1},
	"not c":        {118, 1},
	"shl c":        {119, 1},
	"shr c":        {120, 1},
	"not d":        {121, 1},
	"shl d":        {122, 1},
	"shr d":        {123, 1},
	"clr a":        {124, 1},
	"clr b":        {125, 1},
	"clr c":        {126, 1},
	"clr d":        {127, 1},
	"swp a,b":      {128, 1},
	"swp a,c":      {129, 1},
	"swp a,d":      {130, 1},
	"swp b,c":      {131, 1},
	"swp b,d":      {132, 1},
	"swp c,d":      {133, 1},
	"add ab,cd":    {134, 1},
	"adc ab,cd":    {135, 1},
	"sub ab,cd":    {136, 1},
	"sbb ab,cd":    {137, 1},
	"jmp *%04x":    {138, 3},
	"jnz *%04x":    {139, 3},
	"jc *%04x":     {140, 3},
	"jv *%04x":     {141, 3},
	"call *%04x":   {142, 3},
	"cmp a,b":      {143, 1},
	"cmp a,c":      {144, 1},
	"cmp a,d":      {145, 1},
	"cmp b,c":      {146, 1},
	"cmp b,d":      {147, 1},
	"cmp c,d":      {148, 1},
	"inc a":        {149, 1},
	"inc b":        {150, 1},
	"inc c":        {151, 1},
	"inc d":        {152, 1},
	"dec a":        {153, 1},
	"dec b":        {154, 1},
	"dec c":        {155, 1},
	"dec d":        {156, 1},
	"inc si":       {157, 1},
	"inc di":       {158, 1},
	"dec si":       {159, 1},
	"dec di":       {160, 1},
	"out #%02x,a":  {161, 2},
	"out #%02x,b":  {162, 2},
	"out #%02x,c":  {163, 2},
	"out #%02x,d":  {164, 2},
	"in a,#%02x":   {165, 2},
	"in b,#%02x":   {166, 2},
	"in c,#%02x":   {167, 2},
	"in d,#%02x":   {168, 2},
	"pushfl":       {169, 1},
	"popfl":        {170, 1},
	"clrfl":        {171, 1},
	"rti":          {253, 1},
	"nmi #%04x":    {254, 3},
	"hlt":          {255, 1},
}

// LookupOpcode finds the opcode of a canonical instruction form.
func LookupOpcode(canonical string) (op Opcode, ok bool) {
	op, ok = opcodeTable[canonical]
	return
}

// Opcodes iterates the instruction table in opcode order.
func Opcodes() iter.Seq2[string, Opcode] {
	forms := slices.SortedFunc(maps.Keys(opcodeTable), func(a, b string) int {
		return int(opcodeTable[a].Code) - int(opcodeTable[b].Code)
	})
	return func(yield func(string, Opcode) bool) {
		for _, form := range forms {
			if !yield(form, opcodeTable[form]) {
				return
			}
		}
	}
}

// Family is the operand shape of a mnemonic.
type Family int

const (
	FAMILY_NONE   = Family(0) // none
	FAMILY_ONE    = Family(1) // one
	FAMILY_TWO    = Family(2) // two
	FAMILY_JUMP   = Family(3) // jump
	FAMILY_MOVE   = Family(4) // move
	FAMILY_PORT   = Family(5) // port
	FAMILY_DATA   = Family(6) // data
	FAMILY_STRING = Family(7) // string
)

var familyNames = [...]string{"none", "one", "two", "jump", "move", "port", "data", "string"}

func (fam Family) String() string {
	if fam < 0 || int(fam) >= len(familyNames) {
		return "Family(" + strconv.Itoa(int(fam)) + ")"
	}
	return familyNames[fam]
}

// Operands returns the operand count of instruction families, or -1 for
// the variadic data and string families.
func (fam Family) Operands() int {
	switch fam {
	case FAMILY_NONE:
		return 0
	case FAMILY_ONE, FAMILY_JUMP:
		return 1
	case FAMILY_TWO, FAMILY_MOVE, FAMILY_PORT:
		return 2
	default:
		return -1
	}
}

// mnemonicMap dispatches lower case mnemonics to their family.
var mnemonicMap = map[string]Family{
	"clrfl":  FAMILY_NONE,
	"hlt":    FAMILY_NONE,
	"nop":    FAMILY_NONE,
	"popfl":  FAMILY_NONE,
	"pushfl": FAMILY_NONE,
	"ret":    FAMILY_NONE,
	"rti":    FAMILY_NONE,
	"mov":    FAMILY_MOVE,
	"clr":    FAMILY_ONE,
	"dec":    FAMILY_ONE,
	"inc":    FAMILY_ONE,
	"not":    FAMILY_ONE,
	"push":   FAMILY_ONE,
	"pop":    FAMILY_ONE,
	"shl":    FAMILY_ONE,
	"shr":    FAMILY_ONE,
	"adc":    FAMILY_TWO,
	"add":    FAMILY_TWO,
	"and":    FAMILY_TWO,
	"cmp":    FAMILY_TWO,
	"or":     FAMILY_TWO,
	"sub":    FAMILY_TWO,
	"sbb":    FAMILY_TWO,
	"swp":    FAMILY_TWO,
	"xor":    FAMILY_TWO,
	"call":   FAMILY_JUMP,
	"jc":     FAMILY_JUMP,
	"jnz":    FAMILY_JUMP,
	"jmp":    FAMILY_JUMP,
	"jv":     FAMILY_JUMP,
	"nmi":    FAMILY_JUMP,
	"in":     FAMILY_PORT,
	"out":    FAMILY_PORT,
	"db":     FAMILY_DATA,
	"dw":     FAMILY_DATA,
	"data":   FAMILY_DATA,
	"asciz":  FAMILY_STRING,
	"str":    FAMILY_STRING,
}

// LookupMnemonic returns the family of a mnemonic, ignoring case.
func LookupMnemonic(mnemonic string) (fam Family, ok bool) {
	fam, ok = mnemonicMap[strings.ToLower(mnemonic)]
	return
}

// reservedMap holds the register and flag names with their width in bytes.
var reservedMap = map[string]int{
	"a":     1,
	"b":     1,
	"c":     1,
	"d":     1,
	"ab":    2,
	"cd":    2,
	"si":    2,
	"di":    2,
	"sp":    2,
	"pc":    2,
	"flags": 1,
}

// IsReserved returns true for register and flag names.
func IsReserved(name string) bool {
	_, ok := reservedMap[name]
	return ok
}

// IsByteRegister returns true for the 8-bit general purpose registers.
func IsByteRegister(name string) bool {
	return len(name) == 1 && reservedMap[name] == 1
}
