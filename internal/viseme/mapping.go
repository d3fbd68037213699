package viseme

// phoneShapes groups phonemes by visual mouth-shape similarity. The table is
// total over the inventory in phone.go; every phoneme maps to exactly one
// shape and silence maps to X. Built once at startup and never mutated, so
// concurrent lookups are safe.
var phoneShapes = map[Phone]Shape{
	PhoneSil: ShapeX,

	// A: open vowels and the open glottal fricative
	PhoneAA: ShapeA,
	PhoneAH: ShapeA,
	PhoneAW: ShapeA,
	PhoneHH: ShapeA,

	// B: bilabial closures
	PhoneP: ShapeB,
	PhoneB: ShapeB,
	PhoneM: ShapeB,

	// C: rounded vowels, postalveolar fricatives/affricates, rounded glide
	PhoneSH: ShapeC,
	PhoneCH: ShapeC,
	PhoneJH: ShapeC,
	PhoneZH: ShapeC,
	PhoneAO: ShapeC,
	PhoneOW: ShapeC,
	PhoneOY: ShapeC,
	PhoneUW: ShapeC,
	PhoneW:  ShapeC,

	// D: alveolar consonants and tongue-teeth sounds
	PhoneT:  ShapeD,
	PhoneD:  ShapeD,
	PhoneN:  ShapeD,
	PhoneL:  ShapeD,
	PhoneTH: ShapeD,
	PhoneDH: ShapeD,
	PhoneS:  ShapeD,
	PhoneZ:  ShapeD,

	// E: mid/neutral vowels and the r-colored sounds
	PhoneEH: ShapeE,
	PhoneAE: ShapeE,
	PhoneUH: ShapeE,
	PhoneER: ShapeE,
	PhoneR:  ShapeE,

	// F: labiodental fricatives
	PhoneF: ShapeF,
	PhoneV: ShapeF,

	// G: velar consonants
	PhoneK:  ShapeG,
	PhoneG:  ShapeG,
	PhoneNG: ShapeG,

	// H: high front vowels and the palatal glide
	PhoneIY: ShapeH,
	PhoneIH: ShapeH,
	PhoneEY: ShapeH,
	PhoneAY: ShapeH,
	PhoneY:  ShapeH,
}

// ShapeForPhone returns the mouth shape for a phoneme. The lookup is total:
// unknown symbols fall back to the rest shape X.
func ShapeForPhone(p Phone) Shape {
	if s, ok := phoneShapes[p]; ok {
		return s
	}
	return ShapeX
}
