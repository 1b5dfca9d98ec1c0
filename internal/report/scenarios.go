package report

import "sort"

// Scenario is a named clinical policy with its work-up or treatment plan.
// The plans are curated house protocols and guideline digests; they are
// served verbatim and never derived from measurements.
type Scenario struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Plan        []string `json:"plan"`
}

// ScenarioNames returns all scenario names in alphabetical order.
func ScenarioNames() []string {
	names := make([]string, 0, len(clinicalScenarios))
	for name := range clinicalScenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScenarioByName looks up a scenario. The second return value reports
// whether the name is known.
func ScenarioByName(name string) (Scenario, bool) {
	s, ok := clinicalScenarios[name]
	return s, ok
}

var clinicalScenarios = map[string]Scenario{
	"Aritmogene rechter ventrikel cardiomyopathie (ARVC)": {
		Name:        "Aritmogene rechter ventrikel cardiomyopathie (ARVC)",
		Description: "Diagnostiek, behandeling en ICD-indicaties bij ARVC",
		Plan: []string{
			`Aritmogene rechter ventrikel cardiomyopathie
Genetische counseling en testen bij vermoeden of bevestigde diagnose van ARVC (I).
Geen zware inspanningen bij patiënten met pathogene mutatie en zonder fenotype (IIb)
Betablokker therapie bij patiënten met ARVC (IIb)
Indicatie voor ICD zo aritmogene syncope (IIa), ernstige RV of LV systolische dysfunctie (IIa), matige RV of LV systolische dysfunctie en inducerbaarheid op EFO (IIa).
Bij verdachte symptomen e.g. syncope of palpitaties is een EFO studie te overwegen. (IIb)
Behandeling van SMVT of ICD shocks ondanks BB moet katheter ablatie overwogen worden in gespecialiseerde centra (IIa).
Bij vermoeden van ARVC is een cardiale MR aangewezen (I).`,
		},
	},
	"Intraveneus ijzer / Injectafer (Ferric carboxymaltose)": {
		Name:        "Intraveneus ijzer / Injectafer (Ferric carboxymaltose)",
		Description: "Klinische criteria en dosering voor intraveneuze ijzertoediening (Injectafer) bij hartfalen/ijzerdeficiëntie",
		Plan: []string{
			`Intraveneus ijzer moet overwogen worden (klasse IIa, LOE A) bij symptomatische HFrEF-patiënten en ijzerdeficiëntie
- serum ferritine <100µg/l, of
- serum ferritine 100-299µg/l en transferrine saturatie <20%
Injectafer® wordt nu ook terugbetaald voor cardiologen bij hartfalen bij de ambulante patiënt:
Anemie (man Hb < 13 g/dl, vrouw Hb < 12 g/dl) door bewezen en gedocumenteerde ijzer-malobsorptie (indien voorgeschreven voor chronische inflammatie zoals hartfalen, chronisch nierlijden, …)
Dosering:
50-70kg en Hemoglobine >10g/dl
1000mg IV eenmalig week 1
>70kg en Hemoglobine >10g/dL
1000mg IV week 1 en 500mg IV week 2.
50-70kg en Hemoglobine <10g/dL
1000mg IV week 1 en 500mg IV week 2.
>70kg en Hemoglobine < 10g/dl
1000mg IV week 1 en 1000mg IV week 2.
De toediening gebeurt via opname in het daghospitaal.
Patiënt dient 10 weken na toediening Injectafer® voor een bloedcontrole te gaan in het ziekenhuis of bij de huisdokter teneinde om de werking van de intraveneuze ijzertoediening te kunnen evalueren.`,
		},
	},
	"Atriumflutter": {
		Name:        "Atriumflutter",
		Description: "Beleid bij atriumflutter: anticoagulatie, cardioversie en ablatie-overwegingen",
		Plan: []string{
			`Atriumflutter
Atriumflutter zonder concomitante aanwezigheid van atriumfibrillatie moet overwogen worden voor anticoagulatie maar de drempel is onduidelijk (IIa-C).
Atriale pacing is aangewezen voor terminatie van atriale flutter in aanwezigheid van atriale lead (I-B).
Elektrische cardioversie is aangewezen met lage energie <100 J.
Katheterablatie moet overwogen worden na een eerste episode van symptomatische typische atriumflutter (IIa-B). Zo geen duidelijk reversibele oorzaak is er een zeer hoge kans op recidief. Anti-aritmica zijn minder effectief dan katheterablatie. Bij katheterablatie is er 95% kans op volledig curatief succes zonder recidief.

Katheterablatie is aanbevolen bij symptomatische, herhaalde episodes van CTI-afhankelijke atriumflutter (I-A).
Katheterablatie is aanbevolen bij symptomatische, herhaalde episodes van CTI-onafhankelijke atriumflutter in ervaren centrum (I-B).
Katheterablatie is aanbevolen bij persistente atriumflutter voor tachycardiomyopathie (I-B)`,
		},
	},
	"Chronisch hartfalen HFrEF": {
		Name:        "Chronisch hartfalen HFrEF",
		Description: "Klassiek pharmacologisch beleid en doelstellingen voor chronisch hartfalen met verminderde ejectiefractie (HFrEF)",
		Plan: []string{
			`Chronisch hartfalen HFrEF

Beta blocker
Bisoprolol 2.5mg 1x/d - target 10mg 1x/d
Carvedilol 6.25mg 2x/d - target 12.5mg 2x/d
Dosis verdubbelen elke 2 weken.
Mineralocorticoid Receptor Antagonists (MRA)
Aldactone (Spironolactone) 25mg 1x/d - target 50mg 1x/d
Controle bloedname met nierfunctie en elektrolieten na 1 en 4 weken. Dosis verdubbelen na 4 weken.
Angiotensin Receptor-Neprilysin Inhibitor (ARNI)
Entresto ® (Valsartan/Sacubutril) 49/51mg 2x/d - target 97/103mg 2x/d
Controle bloedname met nierfunctie en elektrolieten na 2 weken. Dosis verdubbelen elke 2 weken.
If - current Inhibitor
Procoralan (Ivabradine) 5mg 2x/d - Target 7.5mg 2x/d.
Sodium-Glucose Cotransporter 2 inhibitors (SGLT-2 inh)
Forxiga 10mg 1x/d.`,
		},
	},
	"Amiodarone (Cordarone)": {
		Name:        "Amiodarone (Cordarone)",
		Description: "Rhythm control, dosering, bijwerkingen en monitoring voor Amiodarone (Cordarone)",
		Plan: []string{
			`Amiodarone (Cordarone)
Rhythm control - Alternatief (kan gebruikt worden voor acute rate controle bij hartfalen, heeft weinig negatief inotroop effect en werkt beter dan digoxin).
- Cordarone (Amiodarone) 300mg IV over 15-30 minuten
- Nadien Cordarone (Amiodarone) 1200mg-3000mg IV over 24 uur.

Bij switch naar orale dosis:
- Cordarone (Amiodarone) 200mg PO 3x/d gedurende 4 weken.
- Nadien, Cordarone (Amiodarone) 200mg PO 1x/d verder
- Cave: Tot 20% van patiënten ontwikkeld schildklierproblemen.

- Hypothyroidie, zo nodig behandelen met L-thyroxine. Zo geen onderliggende Hashimoto (Anti-TPO antistoffen testen) dan reversiebel na staken.
- Risico op sinusbradycardie, AV block, QTc verlengen (zelden aritmogeen, OK zo QTcB <500ms).
- Halfwaarde tijd 55 (tot 142) dagen.
- Jaarlijks klinische controle met ECG en evaluatie oftalmologische, neurologische, pneumologische en dermatologische bijwerkingen (bij hoesten of dyspnee: RX thorax F/P).
- Baseline bepaling van schildklier (TSH, T4), leverenzymen (Bilirubine, AST, ALT, ALP, GGT) en RX thorax F/P.
- Controle van schildklier (TSH, T4) en leverenzymen (Bilirubine, AST, ALT, ALP, GGT, significant zo >2x ULN) na 3 maanden bij opstart of dosis verhoging. Nadien elke 6 maanden of vroeger bij klachten.`,
		},
	},
	"Syncope work-up": {
		Name:        "Syncope work-up",
		Description: "Diagnostisch stappenplan bij syncope (bewustzijnsverlies)",
		Plan: []string{
			"**Anamnese**: prodromale symptomen, triggers (opstaan, mictie, hoesten), duur, herstel",
			"**Heteroanamnese**: convulsies, tongbeet, incontinentie (DD epilepsie)",
			"**Lichamelijk onderzoek**: orthostatische hypotensie (RR liggend/staand), cardiaal/neurologisch",
			"**ECG**: geleidingsstoornissen (AV-blok), aritmieën (QTc, Brugada, pre-excitatie)",
			"**Bloedonderzoek**: Hb, glucose, elektrolyten",
			"**Hoog-risico kenmerken** (opname indicatie):",
			"  - Inspanningsgebonden syncope",
			"  - Hartfalen/structureel hartlijden",
			"  - Familie-anamnese plotse dood <40 jaar",
			"  - ECG-afwijkingen (QTc >460ms, Brugada, ARVD)",
			"**Aanvullend** (afhankelijk van verdenking):",
			"  - Echocardiografie (structureel hartlijden)",
			"  - Holter / event recorder (aritmiedetectie)",
			"  - Tilt-table test (vasovagale syncope)",
			"  - EPO (elektrische stimulatie bij geleidingsstoornis)",
			"  - Neurologisch consult (indien verdenking epilepsie/CVA)",
			"**Behandeling**: oorzaakspecifiek (PM bij bradycardie, ICD bij maligne aritmie, vochtinname/compressiekousen bij orthostatisme)",
		},
	},
	"AVNRT": {
		Name:        "AVNRT",
		Description: "AV-nodale re-entry tachycardie, typische en atypische vormen en behandeling",
		Plan: []string{
			`Typische AVNRT (HA <70ms, VA (His) <60ms, AH/HA >1
Atypische AVNRT (HA >70ms, VA (His) >60ms, AH/HA variabel)
Vagale maneuvers zijn aangewezen zo patiënt niet in hospitaal is of zo hemodynamisch stabiel (I-B).
Zo vagale maneuvers ineffectief dan IV adenosine (I-B).
Katheterablatie is aangewezen als herhaalde, symptomatische episodes van AVNRT (I-B).
Zo minimaal symptomatische, korte en spontaan overgaande episodes is therapie niet noodzakelijk (IIa-C).`,
		},
	},
	"Pre-excitatie": {
		Name:        "Pre-excitatie",
		Description: "Beleid bij pre-excitatie / WPW, risicostratificatie en ablatie-overwegingen",
		Plan: []string{
			`Elektrofysiologisch onderzoek (incl. isoprenaline) voor risicostratificatie met catheterablatie zo hoog risico eigenschappen (SPERRI <250ms, AP ERP <250ms, multipele AP, inductie van AP-gemedieerde tachycardie).
Katheterablatie kan eigenlijk altijd overwogen worden, zelfs bij low-risk asymptomatische pre-excitatie in ervaren centra naargelang voorkeur van patiënt (IIb-C).
Shortest Pre-excited R-R interval van 250 ms is misschien een betrouwbaardere merker voor risico-inschatting.`,
		},
	},
	"Palpitaties workup dr. Ballet": {
		Name:        "Palpitaties workup dr. Ballet",
		Description: "Standaard werkup voor palpitaties volgens dr. Ballet",
		Plan: []string{
			`Labo met complete celtelling, nierfunctie, leverenzymen, elektrolyten, fosfaat, calcium, Hs-cTn, CK, TSH, T4, HbA1C, glucose en NT-proBNP. Bij vrouwen evt. B-HCG.
12 lead electrocardiogram (I) (ideaal ook high precordial met V1-V2 in 2/3de intercostaal ruimte)
Transthoracale echocardiografie (I)
Inspanningselectrocardiogram
Zo nodig longziekte uitsluiten: Volledige longfunctie (Spirometrie met reversibiliteit, flow-volume loop, longvolumes, diffusiecapaciteit en bodybox luchtwegweerstand) + FeNO bij vermoeden astma.
Holter monitoring
Zo zeer infrequente episodes eventueel langere holter of ILR.
Zo non-invasieve evaluatie inconclusief EP study.
Zo gedocumenteerde SVT of minimale pre-excitatie op ECG kan een adenosine proef nuttig zijn.
Zo brugada type 2 of 3 op ECG, familiale voorgeschiedenis van SCD of BrS kan een ajmaline proef nuttig zijn.`,
		},
	},
}
