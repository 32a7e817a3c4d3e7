package animation

const (
	misland   = "m:d=4,o=5,b=220:8e6,8p,8e6,8g6,8f#6,8e6,d6,2e6,8p,8d6,8p,8d6,8c6,8b,8d6,8c6,8p,8c6,8p,b"
	close5    = "c:d=16,o=5,b=140:d,p,e,p,c,p,c4,p,g4"
	triad     = "a:d=16,o=5,b=200:c,32p,e,32p,g"
	fanfare   = "_:d=8,o=6,b=500:c,e,d7,c,e,a#,c,e,a,c,e,g,c,e,a,c,e,a#,c,e,d7"
	scatman   = "_:d=4,o=5,b=250:8b,16b,32p,8b,16b,32p,8b,2d6,16p,16c#.6,16p.,8d6,16p,16c#6,8b,16p,8f#,2p.,16c#6,8p,16d.6,16p.,16c#6,16b,8p,8f#,2p,32p,2d6,16p,16c#6,8p,16d.6,16p.,16c#6,16a.,16p.,8e,2p.,16c#6,8p,16d.6,16p.,16c#6,16b,8p,8b,16b,32p,8b,16b,32p,8b,2d6,16p,16c#.6,16p.,8d6,16p,16c#6,8b,16p,8f#,2p.,16c#6,8p,16d.6,16p.,16c#6,16b,8p,8f#,2p,32p,2d6,16p,16c#6,8p,16d.6,16p.,16c#6,16a.,16p.,8e,2p.,16c#6,8p,16d.6,16p.,16c#6,16a,8p,8e,2p,32p,16f#.6,16p.,16b.,16p."
	triple    = "_:d=8,o=5,b=400:c,e,g,c,e,g,c,e,g,c6,e6,g6,c6,e6,g6,c6,e6,g6,c7,e7,g7,c7,e7,g7,c7,e7,g7"
	cobo      = "__:d=4,o=5,b=160:32c4,32d4,32e4,32f4,32g4,32a4,32b4,32c,32d,32e,32f,32g,32a,32b,32c6,16d6,8p,8b,8g,8e,8d6,8b,8g,8b,8p,8g,8p,b,8p,8a,8g,16g,16a,8g,8f,8g,p,8f,8g,16g,16b,16d6,16p,16e6,16p,f6,p,8d6,8p,8b,8g,8e,8d6,8b,8g,8b,8p,8g,8p,b,8p,8a,8g,16g,16a,8g,8f,8g,p,8f,8g,16g,16b,16d6,16p,16e6,16p,f6"
	motd      = "_:d=4,o=5,b=200:8c,8f,8a,8c.6,16a,8a,8a,8a,a,8a#,8c.6,16a,8g,8a,8a#,8c,8e,8g,8a#.,16g,8g,8g,8g,g,8a,8a#.,16g,8f,8g,8a,8c,8f,8a,8c.6,16a,8a,8a,8a,a,8a#,8c.6,16a,8a#,8c6,d6,8d6,8e6,8f6,16f6,8e6,16e6,8d6,8f6,8c6,8c6,8d6,8c6,16a#,8a,16a,8g,f"
	mario2    = "_:d=4,o=5,b=200:8g,16c,8e,8g.,16c,8e,16g,16c,16e,16g,8b,a,8p,16c,8g,16c,8e,8g.,16c,8e,16g,16c#,16e,16g,8b,a,8p,16b,8c6,16b,8c6,8a.,16c6,8b,16a,8g,16f#,8g,8e.,16c,8d,16e,8f,16e,8f,8b.4,16e,8d.,c"
	happyTune = "_:d=4,o=5,b=140:32c4,32d4,32e4,32f4,32g4,32a4,32b4,32c,32d,32e,32f,32g,32a,32b,32c6,32d6,32p,32d6,32p,32d6,32p,d6,a#,c6,16d6,8p,16c6,2d6."
	tetris    = "_:d=4,o=5,b=300:e6,8b,8c6,8d6,16e6,16d6,8c6,8b,a,8a,8c6,e6,8d6,8c6,b,8b,8c6,d6,e6,c6,a,2a,8p,d6,8f6,a6,8g6,8f6,e6,8e6,8c6,e6,8d6,8c6,b,8b,8c6,d6,e6,c6,a,a"
	intel     = "_:d=16,o=5,b=320:d,p,d,p,d,p,g,p,g,p,g,p,d,p,d,p,d,p,a,p,a,p,a,2p"
	chirp     = "_:d=32,o=4,b=200:e,4p,e,p,e,8p,e,4p,e,8p,e,4p"
	hcock     = "_:d=4,o=5,b=200:16c,16p,16f4,8p,8f,32g,32p,16f,32p,16e,32p,16d,32p,16e,8p,16f,32p,16g,8p.,16c,16p,16f4,8p,8f,32g,32p,16f,32p,16e,32p,16d,32p,16e,8p,16f,32p,16g,8p.,16c,16p,16f4,8p,16g#,32p,8c6,16p,16a#,32p,16g#,8p,16c6,32p,8d#6,16p,16c#6,32p,16c6,8p,16d#6,32p,8g6,16p,16f6,32p,16e6,32p,16c#6,32p,16c6,32p,16a#,32p,16g#,32p,16g,32p,8f4"
)
