package sqlinline

// Inserts are idempotent per (user_id, fingerprint): an identical re-save
// yields the stored row with created = false.

const QInsertNoviceGeneration = `--sql a241df6d-f785-44cd-96de-2851579efc0d
with ins as (
    insert into novice_generations (id, user_id, business_name, business_description, primary_color, secondary_color, logo_data_uri, fingerprint, created_at)
    values (gen_random_uuid(), $1::uuid, $2::text, $3::text, nullif($4::text, ''), nullif($5::text, ''), $6::text, $7::text, now())
    on conflict (user_id, fingerprint) do nothing
    returning id, created_at
)
select id::text, created_at, true as created from ins
union all
select g.id::text, g.created_at, false as created
from novice_generations g
where g.user_id = $1::uuid
  and g.fingerprint = $7::text
  and not exists (select 1 from ins)
limit 1;
`

const QListNoviceGenerations = `--sql 7c7c1038-0988-4687-985d-4a060e54c3af
select
    id::text,
    user_id::text,
    business_name,
    business_description,
    coalesce(primary_color, '') as primary_color,
    coalesce(secondary_color, '') as secondary_color,
    logo_data_uri,
    created_at
from novice_generations
where user_id = $1::uuid
order by created_at desc, id desc;
`

const QDeleteNoviceGeneration = `--sql eb87d1b6-bd31-4cdb-9954-0e5884ad0295
delete from novice_generations
where id = $1::uuid
  and user_id = $2::uuid;
`

const QInsertProfessionalGeneration = `--sql 646a108c-b619-4dd3-bca2-fab7625e2afa
with ins as (
    insert into professional_generations (id, user_id, original_prompt, refined_prompt, used_prompt, logo_data_uri, fingerprint, created_at)
    values (gen_random_uuid(), $1::uuid, nullif($2::text, ''), nullif($3::text, ''), $4::text, $5::text, $6::text, now())
    on conflict (user_id, fingerprint) do nothing
    returning id, created_at
)
select id::text, created_at, true as created from ins
union all
select g.id::text, g.created_at, false as created
from professional_generations g
where g.user_id = $1::uuid
  and g.fingerprint = $6::text
  and not exists (select 1 from ins)
limit 1;
`

const QListProfessionalGenerations = `--sql e0d5ea1f-8ad7-4e73-84d4-ff40c6eb1e0e
select
    id::text,
    user_id::text,
    coalesce(original_prompt, '') as original_prompt,
    coalesce(refined_prompt, '') as refined_prompt,
    used_prompt,
    logo_data_uri,
    created_at
from professional_generations
where user_id = $1::uuid
order by created_at desc, id desc;
`

const QDeleteProfessionalGeneration = `--sql b98e84ef-d58b-4f24-86fd-5fdd6fbcfd27
delete from professional_generations
where id = $1::uuid
  and user_id = $2::uuid;
`

const QInsertImageEditorGeneration = `--sql 491b1b2b-a2e2-4cd9-a7b1-963d6bf41bb5
with ins as (
    insert into image_editor_generations (id, user_id, source_image_uri, source_image_original_name, business_name, business_description, logo_data_uri, fingerprint, created_at)
    values (gen_random_uuid(), $1::uuid, $2::text, nullif($3::text, ''), $4::text, $5::text, $6::text, $7::text, now())
    on conflict (user_id, fingerprint) do nothing
    returning id, created_at
)
select id::text, created_at, true as created from ins
union all
select g.id::text, g.created_at, false as created
from image_editor_generations g
where g.user_id = $1::uuid
  and g.fingerprint = $7::text
  and not exists (select 1 from ins)
limit 1;
`

const QListImageEditorGenerations = `--sql 4e435eb0-5690-4d39-8f49-26d5535ee069
select
    id::text,
    user_id::text,
    source_image_uri,
    coalesce(source_image_original_name, '') as source_image_original_name,
    business_name,
    business_description,
    logo_data_uri,
    created_at
from image_editor_generations
where user_id = $1::uuid
order by created_at desc, id desc;
`

const QDeleteImageEditorGeneration = `--sql 386d3fcb-805a-4c31-b92c-546e65dbc694
delete from image_editor_generations
where id = $1::uuid
  and user_id = $2::uuid;
`
