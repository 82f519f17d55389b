package sun

// radianceTable is the pre-tabulated sun radiance, indexed by turbidity row then cosine of the
// sun zenith angle, per channel. Row t covers turbidity 2 + 10t/15; column s covers cosθ = s/15.
var radianceTable = [tableSize][tableSize][3]float32{
	{
		{39.4028, 1.98004, 5.96046e-08}, {68821.4, 29221.3, 3969.28}, {189745, 116333, 43283.4}, {284101, 199843, 103207},
		{351488, 265139, 161944}, {400584, 315075, 213163}, {437555, 353806, 256435}, {466261, 384480, 292823},
		{489140, 409270, 323569}, {507776, 429675, 349757}, {523235, 446739, 372260}, {536260, 461207, 391767},
		{547379, 473621, 408815}, {556978, 484385, 423827}, {565348, 493805, 437137}, {572701, 502106, 449002},
	},
	{
		{34.9717, 0.0775114, 0}, {33531, 11971.9, 875.627}, {127295, 71095, 22201.3}, {216301, 142827, 66113.9},
		{285954, 205687, 115900}, {339388, 256990, 163080}, {380973, 298478, 205124}, {414008, 332299, 241816},
		{440780, 360220, 273675}, {462869, 383578, 301382}, {481379, 403364, 325586}, {497102, 420314, 346848},
		{510615, 434983, 365635}, {522348, 447795, 382333}, {532628, 459074, 397255}, {541698, 469067, 410647},
	},
	{
		{10.0422, 0, 0.318865}, {16312.8, 4886.47, 84.98}, {85310.4, 43421.5, 11226.2}, {164586, 102046, 42200.5},
		{232559, 159531, 82822.4}, {287476, 209581, 124663}, {331656, 251771, 163999}, {367569, 287173, 199628},
		{397168, 317025, 231420}, {421906, 342405, 259652}, {442848, 364181, 284724}, {460784, 383030, 307045},
		{476303, 399483, 326987}, {489856, 413955, 344876}, {501789, 426774, 360988}, {512360, 438191, 375548},
	},
	{
		{2.3477, 5.96046e-08, 0.129991}, {117.185, 30.0648, 0}, {57123.3, 26502.1, 5565.4}, {125170, 72886.2, 26819.8},
		{189071, 123708, 59081.9}, {243452, 170892, 95209.2}, {288680, 212350, 131047}, {326303, 248153, 164740},
		{357842, 278989, 195638}, {384544, 305634, 223657}, {407381, 328788, 248954}, {427101, 349038, 271779},
		{444282, 366866, 292397}, {459372, 382660, 311064}, {472723, 396734, 328012}, {484602, 409337, 343430},
	},
	{
		{0.383395, 0, 0.027703}, {58.0534, 12.8383, 0}, {38221.6, 16163.6, 2681.55}, {95147.4, 52043, 16954.8},
		{153669, 95910.9, 42062}, {206127, 139327, 72640.8}, {251236, 179082, 104653}, {289639, 214417, 135896},
		{322383, 245500, 165343}, {350467, 272796, 192613}, {374734, 296820, 217644}, {395864, 318050, 240533},
		{414400, 336900, 261440}, {430773, 353719, 280544}, {445330, 368800, 298027}, {458337, 382374, 314041},
	},
	{
		{0.0560895, 0, 0.00474608}, {44.0061, 8.32402, 0}, {25559, 9849.99, 1237.01}, {72294.8, 37148.7, 10649},
		{124859, 74345.6, 29875.8}, {174489, 113576, 55359.1}, {218617, 151011, 83520.3}, {257067, 185252, 112054},
		{290413, 216016, 139698}, {319390, 243473, 165842}, {344686, 267948, 190241}, {366896, 289801, 212852},
		{386513, 309371, 233736}, {403942, 326957, 252998}, {419513, 342823, 270764}, {433487, 357178, 287149},
	},
	{
		{0.00811136, 0, 0.000761211}, {38.0318, 6.09287, 0}, {17083.4, 5996.83, 530.476}, {54909.7, 26508.7, 6634.5},
		{101423, 57618.7, 21163.3}, {147679, 92573, 42135.2}, {190207, 127327, 66606.4}, {228134, 160042, 92352.6},
		{261593, 190061, 117993}, {291049, 217290, 142758}, {317031, 241874, 166258}, {340033, 264051, 188331},
		{360490, 284081, 208945}, {378771, 302212, 228135}, {395184, 318667, 245976}, {409974, 333634, 262543},
	},
	{
		{0.00118321, 0, 0.000119328}, {34.5228, 4.62524, 0}, {11414.1, 3646.94, 196.889}, {41690.9, 18909.8, 4091.39},
		{82364.6, 44646.9, 14944.8}, {124966, 75444.4, 32024.3}, {165467, 107347, 53075.4}, {202437, 138252, 76076.7},
		{235615, 167214, 99627}, {265208, 193912, 122858}, {291580, 218327, 145272}, {315124, 240580, 166611},
		{336208, 260851, 186761}, {355158, 279331, 205696}, {372256, 296206, 223440}, {387729, 311636, 240030},
	},
	{
		{0.000174701, 0, 1.84774e-05}, {31.4054, 3.4608, 0}, {7624.24, 2215.02, 48.0059}, {31644.8, 13484.4, 2490.1},
		{66872.4, 34589.1, 10515}, {105728, 61477.4, 24300.5}, {143926, 90494.6, 42256.1}, {179617, 119420, 62635.3},
		{212200, 147105, 84088.4}, {241645, 173041, 105704}, {268159, 197064, 126911}, {292028, 219187, 147374},
		{313550, 239512, 166913}, {333008, 258175, 185447}, {350650, 275321, 202953}, {366683, 291081, 219433},
	},
	{
		{2.61664e-05, 0, 2.86102e-06}, {27.3995, 2.42835, 5.96046e-08}, {391.889, 104.066, 0}, {24013.1, 9611.97, 1489.37},
		{54282.4, 26792.1, 7366.53}, {89437, 50090, 18406.3}, {125174, 76280.7, 33609.8}, {159354, 103145, 51538.2},
		{191098, 129407, 70945.4}, {220163, 154409, 90919.4}, {246607, 177864, 110847}, {270613, 199690, 130337},
		{292410, 219912, 149156}, {312229, 238614, 167173}, {330289, 255902, 184328}, {346771, 271876, 200589},
	},
	{
		{3.93391e-06, 0, 4.76837e-07}, {21.8815, 1.51091, 0}, {106.645, 26.2423, 0}, {18217.8, 6848.77, 869.811},
		{44054, 20748.7, 5134.5}, {75644.5, 40807, 13913.2}, {108852, 64293.6, 26704.2}, {141364, 89082.8, 42380.1},
		{172081, 113831, 59831.4}, {200579, 137777, 78179.7}, {226776, 160529, 96794.7}, {250759, 181920, 115250},
		{272686, 201910, 133270}, {292739, 220530, 150685}, {311103, 237847, 167398}, {327934, 253933, 183349},
	},
	{
		{6.55651e-07, 0, 1.19209e-07}, {15.4347, 0.791314, 0}, {67.98, 15.4685, 0}, {13818.5, 4877.71, 490.832},
		{35746.5, 16065.3, 3556.94}, {63969.8, 33240.3, 10492.5}, {94648, 54185.5, 21192.5}, {125394, 76932.4, 34825.1},
		{154946, 100125, 50435.6}, {182726, 122930, 67203.7}, {208530, 144877, 84504.4}, {232352, 165726, 101891},
		{254283, 185376, 119059}, {274458, 203811, 135807}, {293024, 221062, 152009}, {310113, 237169, 167579},
	},
	{
		{5.96046e-08, 0, 0}, {9.57723, 0.336247, 0}, {52.9113, 11.1074, 0}, {10479.8, 3472.19, 262.637},
		{29000.9, 12436.5, 2445.87}, {54089.5, 27073.4, 7891.84}, {82288.3, 45662.7, 16796.5}, {111218, 66434.7, 28595.3},
		{139508, 88064, 42494.5}, {166453, 109678, 57749.2}, {191743, 130747, 73756.6}, {215288, 150968, 90064.3},
		{237114, 170191, 106348}, {257311, 188355, 122384}, {275989, 205455, 138022}, {293255, 221507, 153152},
	},
	{
		{0, 0, 0}, {5.37425, 0.109694, 0}, {44.9811, 8.68891, 5.96046e-08}, {7946.76, 2470.32, 128.128},
		{23524.7, 9625.27, 1666.58}, {45729.5, 22047.9, 5917.85}, {71535.2, 38477.1, 13293.2}, {98636.4, 57365.7, 23460.6},
		{125598, 77452, 35785}, {151620, 97851, 49607}, {176299, 117990, 64359}, {199469, 137520, 79594.4},
		{221098, 156245, 94979.6}, {241228, 174066, 110274}, {259937, 190947, 125309}, {277307, 206875, 139956},
	},
	{
		{0, 0, 0}, {2.83079, 0.0199037, 0}, {40.0718, 7.10214, 0}, {6025.35, 1756.45, 51.1916},
		{19080.1, 7447.79, 1122.67}, {38657, 17952.9, 4422.16}, {62181.1, 32419.5, 10503.8}, {87471.2, 49531.4, 19230.6},
		{113069, 68115.1, 30117.9}, {138102, 87295.1, 42596.4}, {162092, 106474, 56143.2}, {184805, 125266, 70327.1},
		{206156, 143438, 84812.9}, {226144, 160857, 99349.8}, {244814, 177459, 113755}, {262220, 193206, 127887},
	},
	{
		{0, 0, 0}, {1.43779, 0, 0.00738072}, {36.6245, 5.93644, 0}, {4568.17, 1248.02, 9.13028},
		{15473.4, 5761.51, 745.266}, {32674.7, 14616.6, 3291.16}, {54045.1, 27313.1, 8284.85}, {77563.8, 42764.4, 15747.9},
		{101783, 59900.8, 25332.8}, {125782, 77874.7, 36561.6}, {149022, 96078.4, 48962}, {171213, 114101, 62125.3},
		{192218, 131678, 75721.7}, {211998, 148648, 89495.8}, {230564, 164920, 103255}, {247950, 180437, 116847},
	},
}
