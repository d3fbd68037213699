// Package viseme models the phoneme inventory, the canonical mouth shapes,
// and the many-to-one mapping between them.
package viseme

import "fmt"

// Phone is one recognized phonetic unit from the ARPABET-style inventory,
// plus a distinguished silence symbol.
type Phone string

const (
	PhoneSil Phone = "SIL"

	// Vowels
	PhoneAA Phone = "AA"
	PhoneAE Phone = "AE"
	PhoneAH Phone = "AH"
	PhoneAO Phone = "AO"
	PhoneAW Phone = "AW"
	PhoneAY Phone = "AY"
	PhoneEH Phone = "EH"
	PhoneER Phone = "ER"
	PhoneEY Phone = "EY"
	PhoneIH Phone = "IH"
	PhoneIY Phone = "IY"
	PhoneOW Phone = "OW"
	PhoneOY Phone = "OY"
	PhoneUH Phone = "UH"
	PhoneUW Phone = "UW"

	// Consonants
	PhoneB  Phone = "B"
	PhoneCH Phone = "CH"
	PhoneD  Phone = "D"
	PhoneDH Phone = "DH"
	PhoneF  Phone = "F"
	PhoneG  Phone = "G"
	PhoneHH Phone = "HH"
	PhoneJH Phone = "JH"
	PhoneK  Phone = "K"
	PhoneL  Phone = "L"
	PhoneM  Phone = "M"
	PhoneN  Phone = "N"
	PhoneNG Phone = "NG"
	PhoneP  Phone = "P"
	PhoneR  Phone = "R"
	PhoneS  Phone = "S"
	PhoneSH Phone = "SH"
	PhoneT  Phone = "T"
	PhoneTH Phone = "TH"
	PhoneV  Phone = "V"
	PhoneW  Phone = "W"
	PhoneY  Phone = "Y"
	PhoneZ  Phone = "Z"
	PhoneZH Phone = "ZH"
)

// phones lists the full supported inventory in a stable order.
var phones = []Phone{
	PhoneSil,
	PhoneAA, PhoneAE, PhoneAH, PhoneAO, PhoneAW, PhoneAY,
	PhoneEH, PhoneER, PhoneEY, PhoneIH, PhoneIY,
	PhoneOW, PhoneOY, PhoneUH, PhoneUW,
	PhoneB, PhoneCH, PhoneD, PhoneDH, PhoneF, PhoneG, PhoneHH,
	PhoneJH, PhoneK, PhoneL, PhoneM, PhoneN, PhoneNG, PhoneP,
	PhoneR, PhoneS, PhoneSH, PhoneT, PhoneTH, PhoneV, PhoneW,
	PhoneY, PhoneZ, PhoneZH,
}

// Phones returns the supported phoneme inventory in a stable order.
func Phones() []Phone {
	out := make([]Phone, len(phones))
	copy(out, phones)
	return out
}

// ParsePhone resolves a recognizer symbol to a Phone. Unknown symbols are
// rejected so a recognizer mismatch surfaces immediately rather than being
// silently animated as silence.
func ParsePhone(symbol string) (Phone, error) {
	p := Phone(symbol)
	if _, ok := phoneShapes[p]; !ok {
		return "", fmt.Errorf("unknown phone symbol %q", symbol)
	}
	return p, nil
}

func (p Phone) String() string {
	return string(p)
}
