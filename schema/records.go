package schema

// The record catalog, transcribed from the original tool's typeinfo
// table (RECORD/rf_*/sf_* definitions). Field comments are the strings
// the text writer appends after each field tag; struct member names are
// matched verbatim by the text reader.

// Common is the field/flag set every record implicitly carries,
// mirroring the original's Record_Common base definition.
var Common = &Record{
	Tag:     [4]byte{'0', '0', '0', '0'},
	Comment: "-- common --",
	Fields: []FieldSchema{
		Leaf("EDID", "Editor ID", ZString),
		Leaf("FULL", "Name", LString),
		Leaf("OBND", "Object Bounds", Struct(12,
			Member("X1", Int16),
			Member("Y1", Int16),
			Member("Z1", Int16),
			Member("X2", Int16),
			Member("Y2", Int16),
			Member("Z2", Int16),
		)),
		Leaf("COCT", "Item Count", Int32),
		Leaf("CNTO", "Items", Struct(8,
			Member("Item", FormIDType),
			Member("Count", Uint32),
		)),
		Leaf("VMAD", "Script", VMAD),
		Leaf("KSIZ", "Keyword Count", Int32),
		Leaf("KWDA", "Keywords", FormIDArray),
		Leaf("FLTR", "Object Window Filter", ZString),
	},
	Flags: []FlagBit{
		{Mask: 0x20, Name: "Deleted"},
		{Mask: 0x40000, Name: "Compressed"},
		{Mask: 0x800000, Name: "Is Marker"},
		{Mask: 0x8000000, Name: "NavMesh Generation - Bounding Box"},
	},
}

var TES4 = &Record{
	Tag:     [4]byte{'T', 'E', 'S', '4'},
	Comment: "File Header",
	Fields: []FieldSchema{
		Leaf("HEDR", "Header", Struct(12,
			Member("Version", Float32),
			Member("Number Of Records", Int32),
			Member("Next Object ID", FormIDType),
		)),
		Sub(
			Leaf("MAST", "Master File", ZString),
			Leaf("DATA", "Unused", ConstU64(0)),
		),
		Leaf("CNAM", "Author", ZString),
		Leaf("INTV", "Tagified Strings", Uint32),
		Leaf("SNAM", "Description", ZString),
	},
	Flags: []FlagBit{
		{Mask: 0x1, Name: "Master"},
		{Mask: 0x80, Name: "Localized"},
		{Mask: 0x200, Name: "Light Master"},
	},
}

var WEAP = &Record{
	Tag:     [4]byte{'W', 'E', 'A', 'P'},
	Comment: "Weapon",
	Fields: []FieldSchema{
		Leaf("ETYP", "Equipment Type", FormIDType),
		Leaf("BIDS", "Block Bash Impact Data Set", FormIDType),
		Leaf("BAMT", "Alternate Block Material", FormIDType),
		Leaf("DESC", "Description", LString),
		Leaf("INAM", "Impact Data Set", FormIDType),
		Leaf("WNAM", "1st Person Model Object", FormIDType),
		Leaf("TNAM", "Attack Fail Sound", FormIDType),
		Leaf("NAM9", "Equip Sound", FormIDType),
		Leaf("NAM8", "Unequip Sound", FormIDType),
		Leaf("DATA", "Game Data", Struct(10,
			Member("Value", Int32),
			Member("Weight", Float32),
			Member("Damage", Int16),
		)),
		Leaf("DNAM", "Weapon Data", Struct(100,
			Member("Animation Type", Uint8),
			Member("Unknown 0", Int8),
			Member("Unknown 1", Int16),
			Member("Speed", Float32),
			Member("Reach", Float32),
			Member("Flags", Uint16),
			Member("Flags?", Uint16),
			Member("Sight FOV", Float32),
			ConstMember(ConstU32(0)),
			Member("VATS to hit", Uint8),
			ConstMember(ConstI8(-1)),
			Member("Projectiles", Uint8),
			Member("Embedded Weapon", Int8),
			Member("Min Range", Float32),
			Member("Max Range", Float32),
			ConstMember(ConstU32(0)),
			Member("Flags 2", Uint32),
			ConstMember(ConstF32(1.0)),
			Member("Unknown", Float32),
			Member("Rumble Left", Float32),
			Member("Rumble Right", Float32),
			Member("Rumble Duration", Float32),
			ConstMember(ConstArrayU32(0, 3)),
			Member("Skill", Int32),
			ConstMember(ConstArrayU32(0, 2)),
			Member("Resist", Int32),
			ConstMember(ConstU32(0)),
			Member("Stagger", Float32),
		)),
		Leaf("CRDT", "Critical Data", Struct(24,
			Member("Critical Damage", Uint16),
			Member("Unknown", Uint16),
			Member("Critical % Mult", Float32),
			Member("Flags", Uint32),
			Member("Unknown 2", Uint32),
			Member("Critical Spell Effect", FormIDType),
			Member("Unknown 3", Uint32),
		)),
		Leaf("VNAM", "Detection Sound Level", Int32),
		fieldMODL,
	},
}

var QUST = &Record{
	Tag:     [4]byte{'Q', 'U', 'S', 'T'},
	Comment: "Quest",
	Fields: []FieldSchema{
		Leaf("DNAM", "Quest Data", Struct(12,
			Member("Flags", EnumFlags(2,
				EV(0x001, "Start Game Enabled"),
				EV(0x004, "Wilderness Encounter"),
				EV(0x008, "Allow Repeated Stages"),
				EV(0x100, "Run Once"),
				EV(0x200, "Exclude From Dialogue Export"),
				EV(0x400, "Warn On Alias Fill Failure"),
			)),
			Member("Priority", Uint8),
			Member("Unknown", Uint8),
			ConstMember(ConstU32(0)),
			Member("Type", Enum(4,
				EV(0x0, "None"),
				EV(0x1, "Main Quest"),
				EV(0x2, "Mages Guild"),
				EV(0x3, "Thieves Guild"),
				EV(0x4, "Dark Brotherhood"),
				EV(0x5, "Companion Quests"),
				EV(0x6, "Miscellaneous"),
				EV(0x7, "Daedric Quests"),
				EV(0x8, "Side Quests"),
				EV(0x9, "Civil War"),
				EV(0xA, "DLC01 - Vampire"),
				EV(0xB, "DLC02 - Dragonborn"),
			)),
		)),
		Leaf("INDX", "Index", Struct(4,
			Member("Journal Index", Uint16),
			Member("Flags", EnumFlags(1,
				EV(0x2, "Start Up Stage"),
				EV(0x4, "Shut Down Stage"),
				EV(0x8, "Keep Instance Data From Here On"),
			)),
			Member("Unknown", Int8),
		)),
		Leaf("CNAM", "Journal Entry", LString),
		Leaf("QSDT", "Flags", EnumFlags(1,
			EV(0x1, "Complete Quest"),
			EV(0x2, "Fail Quest"),
		)),
		Leaf("QOBJ", "Objective Index", Int16),
		Leaf("FNAM", "Objective Flags", Uint32),
		Leaf("NNAM", "Objective Text", LString),
		Leaf("QSTA", "Quest Target", Struct(8,
			Member("Target Alias", Int32),
			Member("Flags", Int32),
		)),
		Leaf("ANAM", "Next Alias ID", Uint32),
		Leaf("ALST", "Alias ID", Uint32),
		Leaf("ALLS", "Location Alias ID", Uint32),
		Leaf("ALID", "Alias Name", ZString),
		Leaf("ALFR", "Alias Forced Reference", FormIDType),
		Leaf("ALUA", "Alias Unique Actor", FormIDType),
		Leaf("VTCK", "Voice Type", FormIDType),
	},
}

var CELL = &Record{
	Tag:     [4]byte{'C', 'E', 'L', 'L'},
	Comment: "Cell",
	Fields: []FieldSchema{
		Leaf("DATA", "Flags", EnumFlags(2,
			EV(0x001, "Interior"),
			EV(0x002, "Has Water"),
			EV(0x004, "Can't Travel From Here"),
			EV(0x008, "No LOD Water"),
			EV(0x020, "Public Area"),
			EV(0x040, "Hand Changed"),
			EV(0x080, "Show Sky"),
			EV(0x100, "Use Sky Lighting"),
		)),
		Leaf("XCLC", "Data", Struct(12,
			Member("X", Int32),
			Member("Y", Int32),
			Member("Flags", Filter(EnumFlags(4,
				EV(0x1, "Force Hide Land Quad 1"),
				EV(0x2, "Force Hide Land Quad 2"),
				EV(0x4, "Force Hide Land Quad 3"),
				EV(0x8, "Force Hide Land Quad 4"),
			), 0xF, 0)),
		)),
		Leaf("LTMP", "Lighting Template", FormIDType),
		Leaf("XCLR", "Regions Containing Cell", FormIDArray),
		Leaf("XLCN", "Location", FormIDType),
		Leaf("XCWT", "Water", FormIDType),
		Leaf("TVDT", "TVDT", ByteArrayCompressed),
		Leaf("MHDT", "MHDT", ByteArrayCompressed),
		Leaf("XCLL", "Lighting", Struct(92,
			Member("Ambient Color", ByteArrayFixed(4)),
			Member("Directional Color", ByteArrayFixed(4)),
			Member("Fog Near Color", ByteArrayFixed(4)),
			Member("Fog Near", Float32),
			Member("Fog Far", Float32),
			Member("Rotation XY", Int32),
			Member("Rotation Z", Int32),
			Member("Directional Fade", Float32),
			Member("Fog Clip Distance", Float32),
			Member("Fow Pow", Float32),
			Member("Ambient X+ Color", ByteArrayFixed(4)),
			Member("Ambient X- Color", ByteArrayFixed(4)),
			Member("Ambient Y+ Color", ByteArrayFixed(4)),
			Member("Ambient Y- Color", ByteArrayFixed(4)),
			Member("Ambient Z+ Color", ByteArrayFixed(4)),
			Member("Ambient Z- Color", ByteArrayFixed(4)),
			Member("Specular Color", ByteArrayFixed(4)),
			Member("Fresnel Power", Float32),
			Member("Fog Far Color", ByteArrayFixed(4)),
			Member("Fog Max", Float32),
			Member("Light Fade Distance Start", Float32),
			Member("Light Fade Distance End", Float32),
			Member("Inheritance Flags", EnumFlags(4,
				EV(0x001, "Ambient Color"),
				EV(0x002, "Directional Color"),
				EV(0x004, "Fog Color"),
				EV(0x008, "Fog Near"),
				EV(0x010, "Fog Far"),
				EV(0x020, "Directional Rotation"),
				EV(0x040, "Directional Fade"),
				EV(0x080, "Clip Distance"),
				EV(0x100, "Fog Power"),
				EV(0x200, "Fog Max"),
				EV(0x400, "Light Fade Distance"),
			)),
		)),
	},
	Flags: []FlagBit{
		{Mask: 0x400, Name: "Persistent"},
	},
}

// locationData is DATA's position/rotation pair shared by placed
// reference records (REFR, ACHR).
var locationData = Leaf("DATA", "Data", Struct(24,
	Member("Pos XYZ", Vector3),
	Member("Rot XYZ", Vector3),
))

var REFR = &Record{
	Tag:     [4]byte{'R', 'E', 'F', 'R'},
	Comment: "Reference",
	Fields: []FieldSchema{
		Leaf("NAME", "Base Form ID", FormIDType),
		Leaf("XSCL", "Scale", Float32),
		Leaf("XAPD", "Activation Parent Flags", EnumFlags(1,
			EV(0x1, "Parent Activate Only"),
		)),
		Leaf("XAPR", "Activation Parent", Struct(8,
			Member("Form ID", FormIDType),
			Member("Delay", Float32),
		)),
		Leaf("FNAM", "Marker Flags", EnumFlags(1,
			EV(0x1, "Visible"),
			EV(0x2, "Can Travel To"),
			EV(0x4, "Show All"),
		)),
		Leaf("XNDP", "Door Pivot", Struct(8,
			Member("NavMesh", FormIDType),
			Member("NavMesh Triangle Index", Uint16),
			ConstMember(ConstU16(0)),
		)),
		Leaf("XLKR", "Linked Reference", Struct(8,
			Member("Keyword", FormIDType),
			Member("Reference", FormIDType),
		)),
		Leaf("XTEL", "Door Teleport", Struct(32,
			Member("Destination Door", FormIDType),
			Member("Pos XYZ", Vector3),
			Member("Rot XYZ", Vector3),
			Member("Flags", EnumFlags(4,
				EV(0x1, "No Alarm"),
			)),
		)),
		Leaf("XLRL", "Location", FormIDType),
		Leaf("XRGD", "Ragdoll Data", ByteArray),
		locationData,
	},
	Flags: []FlagBit{
		{Mask: 0x400, Name: "Persistent"},
		{Mask: 0x800, Name: "Initially Disabled"},
	},
}

var CONT = &Record{
	Tag:     [4]byte{'C', 'O', 'N', 'T'},
	Comment: "Container",
	Fields: []FieldSchema{
		Leaf("DATA", "Data", Struct(5,
			Member("Flags", Uint8),
			Member("Unknown", Float32),
		)),
		fieldMODL,
	},
}

var NPC = &Record{
	Tag:     [4]byte{'N', 'P', 'C', '_'},
	Comment: "Non-Player Character",
	Fields: []FieldSchema{
		Leaf("ACBS", "Base Stats", Struct(24,
			Member("Flags", EnumFlags(4,
				EV(0x00000001, "Female"),
				EV(0x00000002, "Essential"),
				EV(0x00000004, "Is CharGen Face Preset"),
				EV(0x00000008, "Respawn"),
				EV(0x00000010, "Auto Calc Stats"),
				EV(0x00000020, "Unique"),
				EV(0x00000040, "Doesn't Affect Stealth Meter"),
				EV(0x00000080, "PC Level Mult"),
				EV(0x00000100, "Audio Template"),
				EV(0x00000800, "Protected"),
				EV(0x00004000, "Summonable"),
				EV(0x00010000, "Doesn't Bleed"),
				EV(0x00040000, "Owned/Follow"),
				EV(0x00080000, "Opposite Gender Anims"),
				EV(0x00100000, "Simple Actor"),
				EV(0x00200000, "Looped Script"),
				EV(0x10000000, "Looped Audio"),
				EV(0x20000000, "Ghost/Non-Interactable"),
				EV(0x80000000, "Invulnerable"),
			)),
			Member("Magicka Offset", Int16),
			Member("Stamina Offset", Int16),
			Member("Level", Uint16),
			Member("Calc Min Level", Uint16),
			Member("Calc Max Level", Uint16),
			Member("Speed Multiplier", Uint16),
			Member("Disposition Base", Uint16),
			Member("Template Data Flags", EnumFlags(2,
				EV(0x0001, "Use Traits"),
				EV(0x0002, "Use Stats"),
				EV(0x0004, "Use Factions"),
				EV(0x0008, "Use Spell List"),
				EV(0x0010, "Use AI Data"),
				EV(0x0020, "Use AI Packages"),
				EV(0x0040, "Unknown 0x40"),
				EV(0x0080, "Use Base Data"),
				EV(0x0100, "Use Inventory"),
				EV(0x0200, "Use Script"),
				EV(0x0400, "Use Def Pack List"),
				EV(0x0800, "Use Attack Data"),
				EV(0x1000, "Use Keywords"),
			)),
			Member("Health Offset", Int16),
			Member("Bleedout Override", Uint16),
		)),
		Leaf("VTCK", "Voice Type", FormIDType),
		Leaf("TPLT", "Template", FormIDType),
		Leaf("RACE", "Race", FormIDType),
		Leaf("ATKR", "Attack Race", FormIDType),
		Leaf("PNAM", "Head Part", FormIDType),
		Leaf("HCLF", "Hair Color", FormIDType),
		Leaf("ZNAM", "Combat Style", FormIDType),
		Leaf("NAM6", "Height", Float32),
		Leaf("NAM7", "Weight", Float32),
		Leaf("NAM8", "Sound Level", Enum(4,
			EV(0, "Loud"),
			EV(1, "Normal"),
			EV(2, "Silent"),
			EV(3, "Very Loud"),
		)),
		Leaf("DOFT", "Default Outfit", FormIDType),
		Leaf("DPLT", "Default Package List", FormIDType),
		Leaf("FTST", "Face Texture Set", FormIDType),
		Leaf("NAM9", "Face Morph", Struct(76,
			Member("Nose Long/Short", Float32),
			Member("Nose Up/Down", Float32),
			Member("Jaw Up/Down", Float32),
			Member("Jaw Narrow/Wide", Float32),
			Member("Jaw Forward/Back", Float32),
			Member("Cheeks Up/Down", Float32),
			Member("Cheeks Forward/Back", Float32),
			Member("Eyes Up/Down", Float32),
			Member("Eyes In/Out", Float32),
			Member("Brows Up/Down", Float32),
			Member("Brows In/Out", Float32),
			Member("Brows Forward/Back", Float32),
			Member("Lips Up/Down", Float32),
			Member("Lips In/Out", Float32),
			Member("Chin Thin/Wide", Float32),
			Member("Chin Up/Down", Float32),
			Member("Chin Underbite/Overbite", Float32),
			Member("Eyes Forward/Back", Float32),
			Member("Unknown", Uint32),
		)),
		Leaf("RNAM", "Race", FormIDType),
		Leaf("PRKZ", "Perk Count", Uint32),
		Leaf("PRKR", "Perk", Struct(8,
			Member("Perk", FormIDType),
			Member("Unknown", Uint32),
		)),
		Leaf("AIDT", "AI Data", Struct(20,
			Member("Aggression", Uint8),
			Member("Confidence", Uint8),
			Member("Energy", Uint8),
			Member("Morality", Uint8),
			Member("Mood", Uint8),
			Member("Assistance", Uint8),
			Member("Flags", Uint8),
			Member("Unknown", Uint8),
			Member("Warn", Uint32),
			Member("Warn/Attack", Uint32),
			Member("Attack", Uint32),
		)),
		Leaf("PKID", "AI Package", FormIDType),
		Leaf("CNAM", "Class", FormIDType),
		Leaf("DNAM", "Data", Struct(52,
			Member("Base Skill - One-Handed", Uint8),
			Member("Base Skill - Two-Handed", Uint8),
			Member("Base Skill - Marksman", Uint8),
			Member("Base Skill - Block", Uint8),
			Member("Base Skill - Smithing", Uint8),
			Member("Base Skill - Heavy Armor", Uint8),
			Member("Base Skill - Light Armor", Uint8),
			Member("Base Skill - Pickpocket", Uint8),
			Member("Base Skill - Lockpicking", Uint8),
			Member("Base Skill - Sneak", Uint8),
			Member("Base Skill - Alchemy", Uint8),
			Member("Base Skill - Speechcraft", Uint8),
			Member("Base Skill - Alteration", Uint8),
			Member("Base Skill - Conjuration", Uint8),
			Member("Base Skill - Destruction", Uint8),
			Member("Base Skill - Illusion", Uint8),
			Member("Base Skill - Restoration", Uint8),
			Member("Base Skill - Enchanting", Uint8),
			Member("Mod Skill - One-Handed", Uint8),
			Member("Mod Skill - Two-Handed", Uint8),
			Member("Mod Skill - Marksman", Uint8),
			Member("Mod Skill - Block", Uint8),
			Member("Mod Skill - Smithing", Uint8),
			Member("Mod Skill - Heavy Armor", Uint8),
			Member("Mod Skill - Light Armor", Uint8),
			Member("Mod Skill - Pickpocket", Uint8),
			Member("Mod Skill - Lockpicking", Uint8),
			Member("Mod Skill - Sneak", Uint8),
			Member("Mod Skill - Alchemy", Uint8),
			Member("Mod Skill - Speechcraft", Uint8),
			Member("Mod Skill - Alteration", Uint8),
			Member("Mod Skill - Conjuration", Uint8),
			Member("Mod Skill - Destruction", Uint8),
			Member("Mod Skill - Illusion", Uint8),
			Member("Mod Skill - Restoration", Uint8),
			Member("Mod Skill - Enchanting", Uint8),
			Member("Calculated Health", Uint16),
			Member("Calculated Magicka", Uint16),
			Member("Calculated Stamina", Uint16),
			Member("Unknown", Uint16),
			Member("Far Away Model Distance", Float32),
			Member("Geared Up Weapons", Uint8),
			Member("Unknown 2", ByteArrayFixed(3)),
		)),
		Leaf("QNAM", "Skin Tone", Struct(12,
			Member("Red", Float32),
			Member("Green", Float32),
			Member("Blue", Float32),
		)),
		Leaf("NAMA", "Face Parts", Struct(16,
			Member("Nose", Int32),
			Member("Unknown", Int32),
			Member("Eyes", Int32),
			Member("Mouth", Int32),
		)),
		Leaf("TINI", "Tint Item", Uint16),
		Leaf("TINC", "Tint Color", Struct(4,
			Member("Red", Uint8),
			Member("Green", Uint8),
			Member("Blue", Uint8),
			Member("Alpha", Uint8),
		)),
		Leaf("TINV", "Tint Value", Int32),
	},
}

var NAVI = &Record{
	Tag:     [4]byte{'N', 'A', 'V', 'I'},
	Comment: "Navigation",
	Fields: []FieldSchema{
		Leaf("NVER", "Version", Uint32),
		Leaf("NVMI", "NavMesh Data", ByteArray),
		Leaf("NVPP", "Preferred Pathing Data", ByteArrayCompressed),
	},
}

var DLVW = &Record{
	Tag:     [4]byte{'D', 'L', 'V', 'W'},
	Comment: "Dialogue View",
	Fields: []FieldSchema{
		Leaf("QNAM", "Parent Quest", FormIDType),
		Leaf("BNAM", "Branch", FormIDType),
		Leaf("TNAM", "Topic", FormIDType),
		Leaf("ENAM", "Unknown", Uint32),
		Leaf("DNAM", "Show All Text", Bool),
	},
}

var DLBR = &Record{
	Tag:     [4]byte{'D', 'L', 'B', 'R'},
	Comment: "Dialogue Branch",
	Fields: []FieldSchema{
		Leaf("QNAM", "Parent Quest", FormIDType),
		Leaf("TNAM", "Unknown", Uint32),
		Leaf("DNAM", "Flags", Uint32),
		Leaf("SNAM", "Start Dialogue", FormIDType),
	},
}

var INFO = &Record{
	Tag:     [4]byte{'I', 'N', 'F', 'O'},
	Comment: "Topic Info",
	Fields: []FieldSchema{
		Leaf("ENAM", "Data", Struct(4,
			Member("Flags", EnumFlags(2,
				EV(0x0001, "Goodbye"),
				EV(0x0002, "Random"),
				EV(0x0004, "Say Once"),
				EV(0x0010, "On Activation"),
				EV(0x0020, "Random End"),
				EV(0x0040, "Invisible Continue"),
				EV(0x0080, "Walk Away"),
				EV(0x0100, "Walk Away Invisible In Menu"),
				EV(0x0200, "Force Subtitle"),
				EV(0x0400, "Can Move While Greeting"),
				EV(0x0800, "Has No Lip File"),
				EV(0x1000, "Requires Post-Processing"),
				EV(0x4000, "Has Audio Output Override"),
				EV(0x8000, "Spends Favor Points"),
			)),
			Member("Hours Until Reset", Uint16),
		)),
		Leaf("PNAM", "Previous Info", FormIDType),
		Leaf("CNAM", "Favor Level", Uint8),
		Leaf("TCLT", "Topic Links", FormIDType),
		Leaf("NAM1", "Response", LString),
		Leaf("NAM2", "Notes", ZString),
		Leaf("NAM3", "Edits", ZString),
		Leaf("RNAM", "Player Response", LString),
		Leaf("TRDT", "Response", Struct(24,
			Member("Emotion", Enum(4,
				EV(0, "Neutral"),
				EV(1, "Anger"),
				EV(2, "Disgust"),
				EV(3, "Fear"),
				EV(4, "Sad"),
				EV(5, "Happy"),
				EV(6, "Surprise"),
				EV(7, "Puzzled"),
			)),
			Member("Emotion Value", Uint32),
			ConstMember(ConstU32(0)),
			Member("Response Index", Uint8),
			ConstMember(ConstBytes(0x00, 0x00, 0x00)),
			Member("Sound", FormIDType),
			Member("Use Emotion Animation", Bool),
			ConstMember(ConstBytes(0x00, 0x00, 0x00)),
		)),
	},
}

var ACHR = &Record{
	Tag:     [4]byte{'A', 'C', 'H', 'R'},
	Comment: "Actor",
	Fields: []FieldSchema{
		Leaf("NAME", "Base NPC", FormIDType),
		Leaf("XRGD", "Ragdoll Data", ByteArray),
		locationData,
	},
	Flags: []FlagBit{
		{Mask: 0x200, Name: "Starts Dead"},
	},
}

var DIAL = &Record{
	Tag:     [4]byte{'D', 'I', 'A', 'L'},
	Comment: "Dialogue Topic",
	Fields: []FieldSchema{
		Leaf("PNAM", "Priority", Float32),
		Leaf("BNAM", "Owning Branch", FormIDType),
		Leaf("QNAM", "Owning Quest", FormIDType),
		Leaf("TIFC", "Info Count", Uint32),
	},
}

var KYWD = &Record{
	Tag:     [4]byte{'K', 'Y', 'W', 'D'},
	Comment: "Keyword",
	Fields: []FieldSchema{
		Leaf("CNAM", "Color", Struct(4,
			Member("Red", Uint8),
			Member("Green", Uint8),
			Member("Blue", Uint8),
			ConstMember(ConstU8(0)),
		)),
	},
}

var TXST = &Record{
	Tag:     [4]byte{'T', 'X', 'S', 'T'},
	Comment: "Texture Set",
	Fields: []FieldSchema{
		Leaf("TX00", "Color Map", ZString),
		Leaf("TX01", "Normal Map", ZString),
		Leaf("TX02", "Mask", ZString),
		Leaf("TX03", "Tone Map", ZString),
		Leaf("TX04", "Detail Map", ZString),
		Leaf("TX05", "Environment Map", ZString),
		Leaf("TX07", "Specularity Map", ZString),
		Leaf("DNAM", "Flags", EnumFlags(2,
			EV(0x02, "Facegen Textures"),
			EV(0x04, "Has Model Space Normal Map"),
		)),
	},
}

var GLOB = &Record{
	Tag:     [4]byte{'G', 'L', 'O', 'B'},
	Comment: "Global",
	Fields: []FieldSchema{
		Leaf("FNAM", "Type", Enum(1,
			EV('s', "Short"),
			EV('l', "Long"),
			EV('f', "Float"),
		)),
		Leaf("FLTV", "Value", Float32),
	},
}

var FACT = &Record{
	Tag:     [4]byte{'F', 'A', 'C', 'T'},
	Comment: "Faction",
	Fields: []FieldSchema{
		Leaf("DATA", "Flags", EnumFlags(4,
			EV(0x00001, "Hidden from PC"),
			EV(0x00002, "Special Combat"),
			EV(0x00040, "Track Crime"),
			EV(0x00080, "Ignore Murder"),
			EV(0x00100, "Ignore Assault"),
			EV(0x00200, "Ignore Stealing"),
			EV(0x00400, "Ignore Trespass"),
			EV(0x00800, "Do not report crimes against members"),
			EV(0x01000, "Crime Gold, Use Defaults"),
			EV(0x02000, "Ignore Pickpocket"),
			EV(0x04000, "Vendor"),
			EV(0x08000, "Can be Owner"),
			EV(0x10000, "Ignore Werewolf"),
		)),
		Leaf("RNAM", "Rank ID", Uint32),
		Leaf("MNAM", "Male Rank Title", LString),
		Leaf("FNAM", "Female Rank Title", LString),
	},
}

var SOUN = &Record{
	Tag:     [4]byte{'S', 'O', 'U', 'N'},
	Comment: "Sound",
	Fields: []FieldSchema{
		Leaf("SDSC", "Sound Descriptor", FormIDType),
	},
}

var MGEF = &Record{
	Tag:     [4]byte{'M', 'G', 'E', 'F'},
	Comment: "Magic Effect",
	Fields: []FieldSchema{
		Leaf("DNAM", "Description", ZString),
	},
}

var SPEL = &Record{
	Tag:     [4]byte{'S', 'P', 'E', 'L'},
	Comment: "Spell",
	Fields: []FieldSchema{
		Leaf("ETYP", "Equipment Type", FormIDType),
		Leaf("DESC", "Description", ZString),
		Leaf("EFID", "Magic Effect Form ID", FormIDType),
		Leaf("EFIT", "Magic Effect", Struct(12,
			Member("Magnitude", Float32),
			Member("Area of Effect", Uint32),
			Member("Duration", Uint32),
		)),
	},
}

var FLST = &Record{
	Tag:     [4]byte{'F', 'L', 'S', 'T'},
	Comment: "Form List",
	Fields: []FieldSchema{
		Leaf("LNAM", "Object", FormIDType),
	},
}

var STAT = &Record{
	Tag:     [4]byte{'S', 'T', 'A', 'T'},
	Comment: "Static",
	Fields: []FieldSchema{
		Leaf("DNAM", "Data", Struct(12,
			Member("Max Angle", Float32),
			Member("Directional Material", FormIDType),
			Member("Unknown", Uint32),
		)),
		fieldMODL,
	},
}

var MISC = &Record{
	Tag:     [4]byte{'M', 'I', 'S', 'C'},
	Comment: "Misc Item",
	Fields: []FieldSchema{
		fieldMODL,
	},
}

var FURN = &Record{
	Tag:     [4]byte{'F', 'U', 'R', 'N'},
	Comment: "Furniture",
	Fields: []FieldSchema{
		fieldMODL,
		Leaf("XMRK", "Marker Model File Name", ZString),
	},
}

var WRLD = &Record{
	Tag:     [4]byte{'W', 'R', 'L', 'D'},
	Comment: "Worldspace",
	Fields: []FieldSchema{
		Leaf("CNAM", "Climate", FormIDType),
		Leaf("NAM2", "Water", FormIDType),
		Leaf("NAM3", "LOD Water Type", FormIDType),
		Leaf("NAM4", "LOD Water Height", Float32),
		Leaf("DNAM", "Land Data", Struct(8,
			Member("Default Land Level", Float32),
			Member("Default Ocean Level", Float32),
		)),
		Leaf("DATA", "Flags", EnumFlags(1,
			EV(0x01, "Small World"),
			EV(0x02, "Can't Fast Travel From Here"),
			EV(0x08, "No LOD Water"),
			EV(0x10, "No Landscape"),
			EV(0x20, "No Sky"),
			EV(0x40, "Fixed Dimensions"),
			EV(0x80, "No Grass"),
		)),
		Leaf("NAM0", "Bottom Left Coordinates", Struct(8,
			Member("X", Int32),
			Member("Y", Int32),
		)),
		Leaf("NAM9", "Top Right Coordinates", Struct(8,
			Member("X", Int32),
			Member("Y", Int32),
		)),
		Leaf("ZNAM", "Music", FormIDType),
		Leaf("TNAM", "HD LOD Diffuse", ZString),
		Leaf("UNAM", "HD LOD Normal", ZString),
	},
	Flags: []FlagBit{
		{Mask: 0x80000, Name: "Can't Wait"},
	},
}

var LAND = &Record{
	Tag:     [4]byte{'L', 'A', 'N', 'D'},
	Comment: "Landscape",
	Fields: []FieldSchema{
		Leaf("VNML", "Vertex Normals", ByteArray),
		Leaf("VHGT", "Vertex Height", ByteArray),
		Leaf("VCLR", "Vertex Color", ByteArrayCompressed),
		Leaf("BTXT", "Base Texture", Struct(8,
			Member("Land Texture", FormIDType),
			Member("Quadrant", Enum(1,
				EV(0, "Bottom Left"),
				EV(1, "Bottom Right"),
				EV(2, "Upper Left"),
				EV(3, "Upper Right"),
			)),
			ConstMember(ConstBytes(0x00, 0xFF, 0xFF)),
		)),
		Leaf("ATXT", "Additional Texture", Struct(8,
			Member("Land Texture", FormIDType),
			Member("Quadrant", Enum(1,
				EV(0, "Bottom Left"),
				EV(1, "Bottom Right"),
				EV(2, "Upper Left"),
				EV(3, "Upper Right"),
			)),
			ConstMember(ConstU8(0)),
			Member("Texture Layer", Uint16),
		)),
		Leaf("VTXT", "VTXT", ByteArrayRLE),
	},
}

var LCTN = &Record{
	Tag:     [4]byte{'L', 'C', 'T', 'N'},
	Comment: "Location",
	Fields: []FieldSchema{
		Leaf("PNAM", "Parent Location", FormIDType),
		Leaf("MNAM", "Marker", FormIDType),
		Leaf("RNAM", "World Location Radius", Float32),
		Leaf("CNAM", "Color", Struct(4,
			Member("Red", Uint8),
			Member("Green", Uint8),
			Member("Blue", Uint8),
			Member("Alpha", Uint8),
		)),
	},
}

var NAVM = &Record{
	Tag:     [4]byte{'N', 'A', 'V', 'M'},
	Comment: "NavMesh",
	Fields: []FieldSchema{
		Leaf("NVNM", "Geometry", ByteArrayRLE),
	},
}

var fieldMODL = Leaf("MODL", "Model File Name", ZString)

// Default returns a Registry pre-populated with every record schema
// this module knows about.
func Default() *Registry {
	r := NewRegistry()
	for _, rec := range []*Record{
		TES4, WEAP, QUST, CELL, REFR, CONT, NPC, NAVI, DLVW, DLBR,
		INFO, ACHR, DIAL, KYWD, TXST, GLOB, FACT, SOUN, MGEF, SPEL,
		FLST, STAT, MISC, FURN, WRLD, LAND, LCTN, NAVM,
	} {
		r.Register(rec)
	}
	return r
}
