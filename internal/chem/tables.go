package chem

// cpkColors maps lowercase element symbols to CPK display colors.
var cpkColors = map[string]Color{
	"h": 0xffffff, "he": 0xd9ffff, "li": 0xcc80ff, "be": 0xc2ff00,
	"b": 0xffb5b5, "c": 0x909090, "n": 0x3050f8, "o": 0xff0d0d,
	"f": 0x90e050, "ne": 0xb3e3f5, "na": 0xab5cf2, "mg": 0x8aff00,
	"al": 0xbfa6a6, "si": 0xf0c8a0, "p": 0xff8000, "s": 0xffff30,
	"cl": 0x1ff01f, "ar": 0x80d1e3, "k": 0x8f40d4, "ca": 0x3dff00,
	"sc": 0xe6e6e6, "ti": 0xbfc2c7, "v": 0xa6a6ab, "cr": 0x8a99c7,
	"mn": 0x9c7ac7, "fe": 0xe06633, "co": 0xf090a0, "ni": 0x50d050,
	"cu": 0xc88033, "zn": 0x7d80b0, "ga": 0xc28f8f, "ge": 0x668f8f,
	"as": 0xbd80e3, "se": 0xffa100, "br": 0xa62929, "kr": 0x5cb8d1,
	"rb": 0x702eb0, "sr": 0x00ff00, "y": 0x94ffff, "zr": 0x94e0e0,
	"nb": 0x73c2c9, "mo": 0x54b5b5, "tc": 0x3b9e9e, "ru": 0x248f8f,
	"rh": 0x0a7d8c, "pd": 0x006985, "ag": 0xc0c0c0, "cd": 0xffd98f,
	"in": 0xa67573, "sn": 0x668080, "sb": 0x9e63b5, "te": 0xd47a00,
	"i": 0x940094, "xe": 0x429eb0, "cs": 0x57178f, "ba": 0x00c900,
	"la": 0x70d4ff, "ce": 0xffffc7, "pr": 0xd9ffc7, "nd": 0xc7ffc7,
	"pm": 0xa3ffc7, "sm": 0x8fffc7, "eu": 0x61ffc7, "gd": 0x45ffc7,
	"tb": 0x30ffc7, "dy": 0x1fffc7, "ho": 0x00ff9c, "er": 0x00e675,
	"tm": 0x00d452, "yb": 0x00bf38, "lu": 0x00ab24, "hf": 0x4dc2ff,
	"ta": 0x4da6ff, "w": 0x2194d6, "re": 0x267dab, "os": 0x266696,
	"ir": 0x175487, "pt": 0xd0d0e0, "au": 0xffd123, "hg": 0xb8b8d0,
	"tl": 0xa6544d, "pb": 0x575961, "bi": 0x9e4fb5, "po": 0xab5c00,
	"at": 0x754f45, "rn": 0x428296, "fr": 0x420066, "ra": 0x007d00,
	"ac": 0x70abfa, "th": 0x00baff, "pa": 0x00a1ff, "u": 0x008fff,
	"np": 0x0080ff, "pu": 0x006bff, "am": 0x545cf2, "cm": 0x785ce3,
	"bk": 0x8a4fe3, "cf": 0xa136d4, "es": 0xb31fd4, "fm": 0xb31fba,
	"md": 0xb30da6, "no": 0xbd0d87, "lr": 0xc70066, "rf": 0xcc0059,
	"db": 0xd1004f, "sg": 0xd90045, "bh": 0xe00038, "hs": 0xe6002e,
	"mt": 0xeb0026, "ds": 0xeb0026, "rg": 0xeb0026, "cn": 0xeb0026,
	"uut": 0xeb0026, "uuq": 0xeb0026, "uup": 0xeb0026, "uuh": 0xeb0026,
	"uus": 0xeb0026, "uuo": 0xeb0026,
}

// covalentRadii maps lowercase element symbols to single-bond covalent
// radii in picometers.
var covalentRadii = map[string]int{
	"h": 31, "he": 28, "li": 128, "be": 96, "b": 84, "c": 73,
	"n": 71, "o": 66, "f": 57, "na": 166, "mg": 141, "al": 121,
	"si": 111, "p": 107, "s": 105, "cl": 102, "k": 203, "ca": 176,
	"sc": 170, "ti": 160, "v": 153, "cr": 139, "mn": 139, "fe": 132,
	"co": 126, "ni": 124, "cu": 132, "zn": 122, "ga": 122, "ge": 120,
	"as": 119, "se": 120, "br": 120,
}

// residueColors maps residue names to display colors (amino acids and
// nucleotides).
var residueColors = map[string]Color{
	"ALA": 0xc8c8c8, "ARG": 0x145aff, "ASN": 0x00dcdc, "ASP": 0xe60a0a,
	"CYS": 0xe6e600, "GLN": 0x00dcdc, "GLU": 0xe60a0a, "GLY": 0xebebeb,
	"HIS": 0x8282d2, "ILE": 0x0f820f, "LEU": 0x0f820f, "LYS": 0x145aff,
	"MET": 0xe6e600, "PHE": 0x3232aa, "PRO": 0xdc9682, "SER": 0xfa9600,
	"THR": 0xfa9600, "TRP": 0xb45ab4, "TYR": 0x3232aa, "VAL": 0x0f820f,
	"ASX": 0xff69b4, "GLX": 0xff69b4,

	"A": 0xa0a0ff, "C": 0xff8c4b, "G": 0xff7070, "T": 0xa0ffa0, "U": 0xff8080,
	"DA": 0xa0a0ff, "DC": 0xff8c4b, "DG": 0xff7070, "DT": 0xa0ffa0, "DU": 0xff8080,
}

// chainPalette is cycled by chain position.
var chainPalette = []Color{
	0xff3737, 0x04e3d1, 0xffbb18, 0xffb4b4,
	0x3e39fb, 0x008080, 0x2e8a1c, 0xcef615,
}
