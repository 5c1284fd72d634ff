package ui

// Art is an animated ASCII drawing shown above the station panel.
type Art struct {
	ID          string
	Name        string
	Description string
	Author      string
	Frames      []string
}

// DefaultArtID is used when the configured art is unknown.
const DefaultArtID = "lofi-girl-classic"

// Arts is the ordered list of built-in drawings.
var Arts = []Art{
	artLofiGirlClassic(),
	artMusicNotes(),
	artVinylRecord(),
	artCassetteTape(),
	artWavePattern(),
	artHeadphones(),
	artPianoKeys(),
	artCoffeeCup(),
}

func artLofiGirlClassic() Art {
	return Art{
		ID:          "lofi-girl-classic",
		Name:        "Lofi Girl - Classic",
		Description: "The iconic lofi girl studying at her desk",
		Author:      "Lofi Girl Community",
		Frames:      []string{
			`    ⠀⠀⠀⠀⠀⠀⠀⠀⣀⣤⣴⣶⣾⣿⣷⣶⣦⣤⣀⠀⠀⠀⠀⠀⠀⠀
    ⠀⠀⠀⠀⠀⣠⣴⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣦⣄⠀⠀⠀⠀
    ⠀⠀⠀⣠⣾⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣷⣄⠀⠀
    ⠀⠀⣼⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣧⠀
    ⠀⣾⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣷
    ⢸⣿⣿⣿⡿⠟⠛⠛⠛⠛⠛⠛⠛⠛⠛⠛⠛⠛⠻⢿⣿⣿⣿⣿⣿⣿
    ⣿⣿⡿⠋⠀⠀  ⢀⣀⣀⣀⣀⡀⠀⠀⠀   ⠙⢿⣿⣿⣿⣿
    ⣿⣿⠁⠀⠀⠀⣾⣿⣿⣿⣿⣿⣿⣷⠀⠀⠀⠀⠀⠀⠈⣿⣿⣿⣿
    ⣿⡏⠀⠀⠀⠀⣿⣿⣿⣿⣿⣿⣿⣿⠀⠀⠀⠀⠀⠀⠀⢹⣿⣿⣿
    ⣿⡇⠀⠀⠀⠀⢻⣿⣿⣿⣿⣿⣿⡟⠀⠀⠀⠀⠀⠀⠀⢸⣿⣿⣿
    ⣿⣧⠀⠀⠀⠀⠈⠻⣿⣿⣿⣿⠟⠁⠀⠀⠀⠀⠀⠀⠀⣼⣿⣿⣿
    ⢿⣿⣦⠀⠀⠀⠀⠀⠈⠙⠋⠁⠀⠀⠀⠀⠀⠀⠀⠀⣴⣿⣿⣿⡿
    ⠈⢿⣿⣷⣄⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⢀⣼⣿⣿⣿⡿⠁
    ⠀⠀⠻⣿⣿⣷⣤⣀⠀⠀⠀⠀⠀⠀⠀⣀⣤⣾⣿⣿⣿⠟⠀⠀
    ⠀⠀⠀⠈⠻⢿⣿⣿⣿⣷⣶⣶⣶⣿⣿⣿⣿⣿⡿⠟⠁⠀⠀⠀
    ⠀⠀⠀⠀⠀⠀⠈⠉⠛⠻⠿⠿⠿⠿⠟⠛⠉⠁⠀⠀⠀⠀⠀⠀

          Lofi Girl - Beats to Study/Relax To`,
			`    ⠀⠀⠀⠀⠀⠀⠀⠀⣀⣤⣴⣶⣾⣿⣷⣶⣦⣤⣀⠀⠀⠀⠀⠀⠀⠀
    ⠀⠀⠀⠀⠀⣠⣴⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣦⣄⠀⠀⠀⠀
    ⠀⠀⠀⣠⣾⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣷⣄⠀⠀
    ⠀⠀⣼⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣧⠀
    ⠀⣾⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣷
    ⢸⣿⣿⣿⡿⠟⠛⠛⠛⠛⠛⠛⠛⠛⠛⠛⠛⠛⠻⢿⣿⣿⣿⣿⣿⣿
    ⣿⣿⡿⠋⠀⠀  ⢀⣀⣀⣀⣀⡀⠀⠀⠀   ⠙⢿⣿⣿⣿⣿
    ⣿⣿⠁⠀⠀⠀⣾⣿⣿⣿⣿⣿⣿⣷⠀⠀⠀⠀⠀⠀⠈⣿⣿⣿⣿
    ⣿⡏⠀⠀⠀⠀⣿⣿⣿⣿⣿⣿⣿⣿⠀⠀⠀⠀⠀⠀⠀⢹⣿⣿⣿
    ⣿⡇⠀⠀⠀⠀⢻⣿⣿⣿⣿⣿⣿⡟⠀⠀⠀⠀⠀⠀⠀⢸⣿⣿⣿
    ⣿⣧⠀⠀⠀⠀⠈⠻⣿⣿⣿⣿⠟⠁⠀⠀⠀⠀⠀⠀⠀⣼⣿⣿⣿
    ⢿⣿⣦⠀⠀⠀⠀⠀⠈⠙⠋⠁⠀⠀⠀⠀⠀⠀⠀⠀⣴⣿⣿⣿⡿
    ⠈⢿⣿⣷⣄⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⠀⢀⣼⣿⣿⣿⡿⠁
    ⠀⠀⠻⣿⣿⣷⣤⣀⠀⠀⠀⠀⠀⠀⠀⣀⣤⣾⣿⣿⣿⠟⠀⠀
    ⠀⠀⠀⠈⠻⢿⣿⣿⣿⣷⣶⣶⣶⣿⣿⣿⣿⣿⡿⠟⠁⠀⠀⠀
    ⠀⠀⠀⠀⠀⠀⠈⠉⠛⠻⠿⠿⠿⠿⠟⠛⠉⠁⠀⠀⠀⠀⠀⠀

          Lofi Girl - Beats to Study/Relax To`,
		},
	}
}

func artMusicNotes() Art {
	return Art{
		ID:          "music-notes",
		Name:        "Music Notes",
		Description: "Simple animated music notes floating",
		Author:      "LofiGirl Terminal",
		Frames:      []string{
			`                    ♪
              ♫           ♪
        ♪                      ♫
                  ♫
    ♫                   ♪
              ♪                 ♫

        ╔═══════════════════════════════╗
        ║                               ║
        ║    L O F I   R A D I O        ║
        ║                               ║
        ║    Chill Beats & Vibes        ║
        ║                               ║
        ╚═══════════════════════════════╝

              ♫           ♪
        ♪                      ♫
                  ♪
    ♫                   ♫`,
			`              ♫
        ♪                      ♫
                  ♪                 ♪
    ♫                   ♫
              ♪
                          ♫

        ╔═══════════════════════════════╗
        ║                               ║
        ║    L O F I   R A D I O        ║
        ║                               ║
        ║    Chill Beats & Vibes        ║
        ║                               ║
        ╚═══════════════════════════════╝

    ♪                 ♫
              ♫           ♪
                    ♫
        ♪                      ♫`,
			`        ♪                 ♫
              ♫           ♪
                    ♫          ♪
        ♪                      ♫
                  ♫
    ♫                   ♪

        ╔═══════════════════════════════╗
        ║                               ║
        ║    L O F I   R A D I O        ║
        ║                               ║
        ║    Chill Beats & Vibes        ║
        ║                               ║
        ╚═══════════════════════════════╝

              ♪
                          ♫
    ♫                   ♫
              ♫           ♪`,
		},
	}
}

func artVinylRecord() Art {
	return Art{
		ID:          "vinyl-record",
		Name:        "Vinyl Record",
		Description: "Classic vinyl record spinning animation",
		Author:      "LofiGirl Terminal",
		Frames:      []string{
			`              ████████████
          ████░░░░░░░░░░████
        ██░░░░░░░░░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
    ██░░░░░░░░████░░░░░░░░░░░░██
    ██░░░░░░██    ██░░░░░░░░░░██
    ██░░░░██        ██░░░░░░░░██
    ██░░██            ██░░░░░░██
    ██░░██    ●●●●    ██░░░░░░██
    ██░░░░██        ██░░░░░░░░██
    ██░░░░░░██    ██░░░░░░░░░░██
    ██░░░░░░░░████░░░░░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
        ██░░░░░░░░░░░░░░░░██
          ████░░░░░░░░░░████
              ████████████

           Now Spinning...`,
			`              ████████████
          ████░░░░░░░░░░████
        ██░░░░░░░░░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
    ██░░░░░░████░░░░░░░░░░░░░░██
    ██░░░░██    ██░░░░░░░░░░░░██
    ██░░██        ██░░░░░░░░░░██
    ██░░██          ██░░░░░░░░██
    ██░░██    ●●●●  ██░░░░░░░░██
    ██░░░░██        ██░░░░░░░░██
    ██░░░░░░██    ██░░░░░░░░░░██
    ██░░░░░░░░████░░░░░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
        ██░░░░░░░░░░░░░░░░██
          ████░░░░░░░░░░████
              ████████████

           Now Spinning...`,
			`              ████████████
          ████░░░░░░░░░░████
        ██░░░░░░░░░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
    ██░░░░░░░░████░░░░░░░░░░░░██
    ██░░░░░░██    ██░░░░░░░░░░██
    ██░░░░██        ██░░░░░░░░██
    ██░░░░██          ██░░░░░░██
    ██░░░░██  ●●●●    ██░░░░░░██
    ██░░░░░░██        ██░░░░░░██
    ██░░░░░░░░██    ██░░░░░░░░██
    ██░░░░░░░░░░████░░░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
        ██░░░░░░░░░░░░░░░░██
          ████░░░░░░░░░░████
              ████████████

           Now Spinning...`,
			`              ████████████
          ████░░░░░░░░░░████
        ██░░░░░░░░░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
    ██░░░░░░░░░░████░░░░░░░░░░██
    ██░░░░░░░░██    ██░░░░░░░░██
    ██░░░░░░██        ██░░░░░░██
    ██░░░░░░██          ██░░░░██
    ██░░░░░░██    ●●●●  ██░░░░██
    ██░░░░░░░░██        ██░░░░██
    ██░░░░░░░░░░██    ██░░░░░░██
    ██░░░░░░░░░░░░████░░░░░░░░██
      ██░░░░░░░░░░░░░░░░░░░░██
        ██░░░░░░░░░░░░░░░░██
          ████░░░░░░░░░░████
              ████████████

           Now Spinning...`,
		},
	}
}

func artCassetteTape() Art {
	return Art{
		ID:          "cassette-tape",
		Name:        "Cassette Tape",
		Description: "Retro cassette tape with spinning reels",
		Author:      "LofiGirl Terminal",
		Frames:      []string{
			`    ╔═══════════════════════════════════╗
    ║  ╔═════════════════════════════╗  ║
    ║  ║  L O F I   M I X   T A P E  ║  ║
    ║  ╚═════════════════════════════╝  ║
    ║                                   ║
    ║   ┌──────┐           ┌──────┐    ║
    ║   │ ●──● │           │ ●──● │    ║
    ║   │ │  │ │           │ │  │ │    ║
    ║   │ ●──● │           │ ●──● │    ║
    ║   └──────┘           └──────┘    ║
    ║                                   ║
    ║  ═══════════════════════════════  ║
    ║                                   ║
    ║    [■]  [▶]  [●]  [◀◀]  [▶▶]     ║
    ╚═══════════════════════════════════╝

           Side A - Chill Vibes`,
			`    ╔═══════════════════════════════════╗
    ║  ╔═════════════════════════════╗  ║
    ║  ║  L O F I   M I X   T A P E  ║  ║
    ║  ╚═════════════════════════════╝  ║
    ║                                   ║
    ║   ┌──────┐           ┌──────┐    ║
    ║   │ ●●─● │           │ ●─●● │    ║
    ║   │ ││ │ │           │ │ ││ │    ║
    ║   │ ●──● │           │ ●──● │    ║
    ║   └──────┘           └──────┘    ║
    ║                                   ║
    ║  ═══════════════════════════════  ║
    ║                                   ║
    ║    [■]  [▶]  [●]  [◀◀]  [▶▶]     ║
    ╚═══════════════════════════════════╝

           Side A - Chill Vibes`,
		},
	}
}

func artWavePattern() Art {
	return Art{
		ID:          "wave-pattern",
		Name:        "Wave Pattern",
		Description: "Smooth wave animation",
		Author:      "LofiGirl Terminal",
		Frames:      []string{
			`    ～～～～～～～～～～～～～～～～～～～～～

         L O F I   W A V E S

    ～～～～～～～～～～～～～～～～～～～～～

         ╔═══════════════════╗
         ║                   ║
         ║  Relax & Unwind   ║
         ║                   ║
         ╚═══════════════════╝

    ～～～～～～～～～～～～～～～～～～～～～

         Smooth Beats Playing

    ～～～～～～～～～～～～～～～～～～～～～`,
			`    ～～～～～～～～～～～～～～～～～～～～～


         L O F I   W A V E S
    ～～～～～～～～～～～～～～～～～～～～～

         ╔═══════════════════╗
         ║                   ║
         ║  Relax & Unwind   ║
         ║                   ║
         ╚═══════════════════╝

    ～～～～～～～～～～～～～～～～～～～～～
         Smooth Beats Playing


    ～～～～～～～～～～～～～～～～～～～～～`,
			`    ～～～～～～～～～～～～～～～～～～～～～

         L O F I   W A V E S

    ～～～～～～～～～～～～～～～～～～～～～
         ╔═══════════════════╗
         ║                   ║
         ║  Relax & Unwind   ║
         ║                   ║
         ╚═══════════════════╝
    ～～～～～～～～～～～～～～～～～～～～～

         Smooth Beats Playing
    ～～～～～～～～～～～～～～～～～～～～～`,
		},
	}
}

func artHeadphones() Art {
	return Art{
		ID:          "headphones",
		Name:        "Headphones",
		Description: "Headphones with sound waves",
		Author:      "LofiGirl Terminal",
		Frames:      []string{
			`            ╭─────────────╮
           ╱               ╲
          │    ♪  ♫  ♪    │
          │                │
           ╲               ╱
            ╰─────────────╯
             │           │
             │           │
            ┌┴─────────┴┐
            │ ♫ ♪ ♫ ♪ ♫ │
            │           │
            │  LOFI ON  │
            │           │
            │ ♪ ♫ ♪ ♫ ♪ │
            └───────────┘

        Headphones On, World Off`,
			`            ╭─────────────╮
           ╱               ╲
          │  ♪  ♫  ♪  ♫  │
          │                │
           ╲               ╱
            ╰─────────────╯
             │           │
             │           │
            ┌┴─────────┴┐
            │ ♪ ♫ ♪ ♫ ♪ │
            │           │
            │  LOFI ON  │
            │           │
            │ ♫ ♪ ♫ ♪ ♫ │
            └───────────┘

        Headphones On, World Off`,
		},
	}
}

func artPianoKeys() Art {
	return Art{
		ID:          "piano-keys",
		Name:        "Piano Keys",
		Description: "Piano keyboard with notes",
		Author:      "LofiGirl Terminal",
		Frames:      []string{
			`        ┌──┬──┬─┬──┬──┬──┬──┬─┬──┬──┬─┬──┬──┐
        │  │▓▓│ │▓▓│  │  │▓▓│ │▓▓│  │ │▓▓│  │
        │  │▓▓│ │▓▓│  │  │▓▓│ │▓▓│  │ │▓▓│  │
        │  └──┘ └──┘  │  └──┘ └──┘  │ └──┘  │
        │  ♪           │      ♫      │       │
        │              │             │       │
        └──────────────┴─────────────┴───────┘

        ╔════════════════════════════════════╗
        ║                                    ║
        ║      L O F I   P I A N O           ║
        ║                                    ║
        ║      Smooth Jazz & Beats           ║
        ║                                    ║
        ╚════════════════════════════════════╝`,
			`        ┌──┬──┬─┬──┬──┬──┬──┬─┬──┬──┬─┬──┬──┐
        │  │▓▓│ │▓▓│  │  │▓▓│ │▓▓│  │ │▓▓│  │
        │  │▓▓│ │▓▓│  │  │▓▓│ │▓▓│  │ │▓▓│  │
        │  └──┘ └──┘  │  └──┘ └──┘  │ └──┘  │
        │      ♫       │  ♪          │       │
        │              │             │       │
        └──────────────┴─────────────┴───────┘

        ╔════════════════════════════════════╗
        ║                                    ║
        ║      L O F I   P I A N O           ║
        ║                                    ║
        ║      Smooth Jazz & Beats           ║
        ║                                    ║
        ╚════════════════════════════════════╝`,
		},
	}
}

func artCoffeeCup() Art {
	return Art{
		ID:          "coffee-cup",
		Name:        "Coffee Cup",
		Description: "Steaming coffee cup for coding sessions",
		Author:      "LofiGirl Terminal",
		Frames:      []string{
			`              (  )   (   )  )
               ) (   )  (  (
               ( )  (    ) )
               _____________
              <_____________> ___
              |             |/ _ \
              |   LOFI      | | | |
              |   COFFEE    |_| | |
          ___|             |\___/
         /    \___________/    \
         \_____________________/

        ╔════════════════════════════╗
        ║  Code Better with Coffee   ║
        ║     & Lofi Beats           ║
        ╚════════════════════════════╝`,
			`               (  )   (   )  )
              ) (   )  (  (
               ( )  (    ) )
               _____________
              <_____________> ___
              |             |/ _ \
              |   LOFI      | | | |
              |   COFFEE    |_| | |
          ___|             |\___/
         /    \___________/    \
         \_____________________/

        ╔════════════════════════════╗
        ║  Code Better with Coffee   ║
        ║     & Lofi Beats           ║
        ╚════════════════════════════╝`,
		},
	}
}

// ArtByID returns the drawing with the given id, falling back to the default.
func ArtByID(id string) Art {
	for _, a := range Arts {
		if a.ID == id {
			return a
		}
	}
	for _, a := range Arts {
		if a.ID == DefaultArtID {
			return a
		}
	}
	return Arts[0]
}
