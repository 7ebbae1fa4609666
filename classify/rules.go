package classify

// DefaultRules returns the built-in rule tables for the five KPSS courses.
// Order matters: more specific topics come first so that a title naming
// both an Atatürk-era reform and the Ottoman Empire lands on the former.
func DefaultRules() map[string][]Rule {
	return map[string][]Rule{
		"tarih": {
			{TopicID: "tarih-inkilaplar", Keywords: []string{"atatürk", "inkılap", "inkılapları", "ilkeleri", "iç politika"}},
			{TopicID: "tarih-kurtulus", Keywords: []string{"milli mücadele", "tbmm", "muharebeler", "mondros", "sakarya", "dumlupınar"}},
			{TopicID: "tarih-osmanli-kurulus", Keywords: []string{"osmanlı", "kuruluş dönemi", "yükselme dönemi", "duraklama dönemi", "gerileme dönemi", "xix.yüzyıl", "xx.yüzyıl", "xviii.yüzyıl", "xvii.yüzyıl"}},
			{TopicID: "tarih-ilk-turk-islam", Keywords: []string{"ilk türk islam", "anadolu selçuklu", "karahanlı", "gazneli"}},
			{TopicID: "tarih-islamiyet-oncesi", Keywords: []string{"islamiyet öncesi", "ilk türk devletleri", "göktürk", "hun", "uygur"}},
		},
		"turkce": {
			{TopicID: "turkce-paragraf", Keywords: []string{"paragraf", "ana düşünce", "yardımcı düşünce"}},
			{TopicID: "turkce-dil-bilgisi", Keywords: []string{"dil bilgisi", "sözcük türleri", "fiil", "isim", "sıfat"}},
			{TopicID: "turkce-anlam-bilgisi", Keywords: []string{"anlam", "eş anlam", "zıt anlam", "mecaz"}},
			{TopicID: "turkce-cumle-bilgisi", Keywords: []string{"cümle", "özne", "yüklem", "nesne"}},
		},
		"matematik": {
			{TopicID: "mat-sayilar", Keywords: []string{"sayılar", "doğal", "tam sayı", "rasyonel"}},
			{TopicID: "mat-bolme-bolunebilme", Keywords: []string{"bölme", "bölünebilme", "ebob", "ekok"}},
			{TopicID: "mat-problemler", Keywords: []string{"problem", "yaş", "işçi", "havuz", "yüzde"}},
			{TopicID: "mat-denklemler", Keywords: []string{"denklem", "eşitsizlik", "bilinmeyen"}},
		},
		"vatandaslik": {
			{TopicID: "vat-anayasa", Keywords: []string{"anayasa", "temel hak", "yasama", "yürütme", "yargı"}},
			{TopicID: "vat-idare", Keywords: []string{"idare", "kamu", "devlet teşkilatı"}},
			{TopicID: "vat-insan-haklari", Keywords: []string{"insan hakları", "özgürlük", "aihm"}},
		},
		"cografya": {
			{TopicID: "cog-fiziki", Keywords: []string{"fiziki", "yer şekilleri", "dağ", "ova", "akarsu"}},
			{TopicID: "cog-iklim", Keywords: []string{"iklim", "sıcaklık", "yağış", "basınç", "rüzgar"}},
			{TopicID: "cog-turkiye", Keywords: []string{"türkiye", "bölge", "karadeniz", "akdeniz", "ege"}},
			{TopicID: "cog-nufus", Keywords: []string{"nüfus", "göç", "yerleşme", "köy", "şehir"}},
		},
	}
}
